// internal/game/engine.go
//
// Adaptive word-selection and score-update engine.
// Responsibilities:
//   - Snapshot the word pool ordered by ascending score.
//   - Pick one word for the typing game, biased toward the priority tier.
//   - Build deduplicated card-matching sets (standard and daily challenge).
//   - Apply +1/-1 attempt outcomes as relative deltas at the storage layer.
//
// Notes:
//   - Tiers are recomputed from a fresh snapshot on every request; nothing is cached.
//   - Randomness is injected (WithRand) and serialised, so one Engine serves concurrent requests.
//   - Selection-size conditions (ErrEmptyPool, InsufficientPoolError) are expected
//     outcomes and are not recorded as span errors.
package game

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/robalobadob/vocabdrill/internal/words"
)

var tracer = otel.Tracer("github.com/robalobadob/vocabdrill/internal/game")

// Pool is the read side of the word store.
type Pool interface {
	Snapshot(ctx context.Context) ([]words.Word, error)
}

// Engine selects words and applies attempt outcomes.
type Engine struct {
	pool   Pool
	scores ScoreAdder
	params Params
	rng    Rand
}

// Option customises an Engine.
type Option func(*Engine)

// WithParams replaces the default tuning.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithRand injects the randomness source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithScores routes outcome writes through a different ScoreAdder, e.g.
// CompareAndSwapScores for storage without relative writes.
func WithScores(s ScoreAdder) Option {
	return func(e *Engine) { e.scores = s }
}

// Store is what New needs from storage by default.
type Store interface {
	Pool
	ScoreAdder
}

// New constructs an Engine over st. Params that fail Validate are rejected.
func New(st Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		pool:   st,
		scores: st,
		params: DefaultParams(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.params.Validate(); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}
	e.rng = &lockedRand{r: e.rng}
	return e, nil
}

// Params returns the engine's tuning.
func (e *Engine) Params() Params { return e.params }

// Snapshot returns the current pool ordered by ascending score.
func (e *Engine) Snapshot(ctx context.Context) ([]words.Word, error) {
	ctx, span := tracer.Start(ctx, "game.Snapshot")
	defer span.End()

	pool, err := e.snapshot(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("pool.size", len(pool)))
	return pool, nil
}

func (e *Engine) snapshot(ctx context.Context) ([]words.Word, error) {
	pool, err := e.pool.Snapshot(ctx)
	if err != nil {
		return nil, &StorageError{Op: "snapshot pool", Err: err}
	}
	words.SortByScore(pool)
	return pool, nil
}

// PickOne selects a single word for the typing game.
func (e *Engine) PickOne(ctx context.Context) (words.Word, error) {
	ctx, span := tracer.Start(ctx, "game.PickOne")
	defer span.End()

	pool, err := e.snapshot(ctx)
	if err != nil {
		fail(span, err)
		return words.Word{}, err
	}
	span.SetAttributes(attribute.Int("pool.size", len(pool)))
	if len(pool) == 0 {
		return words.Word{}, ErrEmptyPool
	}

	tiers := Partition(pool, e.params.TierFraction)
	w, ok := PickWeighted(tiers, e.rng, e.params.PriorityBias)
	if !ok {
		w = pool[e.rng.IntN(len(pool))]
	}
	span.SetAttributes(attribute.Int64("word.id", w.ID))
	return w, nil
}

// BuildMatchSet selects and deals a card-matching game. daily switches to the
// uniform daily-challenge draw.
func (e *Engine) BuildMatchSet(ctx context.Context, daily bool) (*MatchSet, error) {
	ctx, span := tracer.Start(ctx, "game.BuildMatchSet", trace.WithAttributes(attribute.Bool("daily", daily)))
	defer span.End()

	pool, err := e.snapshot(ctx)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("pool.size", len(pool)))

	var chosen []words.Word
	if daily {
		chosen, err = dailySet(pool, e.params, e.rng)
	} else {
		chosen, err = standardSet(pool, e.params, e.rng)
	}
	if err != nil {
		return nil, err
	}
	if len(chosen) == 0 {
		return nil, ErrEmptyPool
	}
	span.SetAttributes(attribute.Int("set.pairs", len(chosen)))
	return Deal(chosen, e.rng), nil
}

// ApplyOutcome adds +1 (success) or -1 (failure) to the stored score of id
// and returns the new score.
func (e *Engine) ApplyOutcome(ctx context.Context, id int64, success bool) (int, error) {
	o := Outcome{WordID: id, Success: success}
	ctx, span := tracer.Start(ctx, "game.ApplyOutcome", trace.WithAttributes(
		attribute.Int64("word.id", id),
		attribute.Bool("success", success),
	))
	defer span.End()

	score, err := e.scores.AddScore(ctx, o.WordID, o.Delta())
	switch {
	case errors.Is(err, words.ErrNotFound):
		return 0, ErrNotFound
	case err != nil:
		err = &StorageError{Op: "apply outcome", Err: err}
		fail(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int("score", score))
	return score, nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
