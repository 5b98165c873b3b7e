package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrill/internal/daily"
)

// Pruner deletes daily-attempt rows dated before a YYYY-MM-DD key.
type Pruner interface {
	Prune(ctx context.Context, before string) (int64, error)
}

// Scheduler runs housekeeping jobs on a UTC clock.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	retention int
	now       func() time.Time
}

// New creates a scheduler that keeps retentionDays of daily attempts.
func New(pruner Pruner, retentionDays int) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pruner:    pruner,
		retention: retentionDays,
		now:       time.Now,
	}
}

// Start schedules the daily prune shortly after UTC midnight and returns
// without blocking.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At("00:05").Do(s.prune); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := s.PruneNow(ctx); err != nil {
		log.Error().Err(err).Msg("prune daily attempts")
	}
}

// PruneNow removes attempts older than the retention window.
func (s *Scheduler) PruneNow(ctx context.Context) (int64, error) {
	cutoff := daily.DateKey(s.now().AddDate(0, 0, -s.retention))
	n, err := s.pruner.Prune(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("deleted", n).Str("before", cutoff).Msg("pruned daily attempts")
	return n, nil
}
