package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/vocabdrill/internal/config"
	"github.com/robalobadob/vocabdrill/internal/daily"
	"github.com/robalobadob/vocabdrill/internal/database"
	"github.com/robalobadob/vocabdrill/internal/game"
	"github.com/robalobadob/vocabdrill/internal/httpserver"
	"github.com/robalobadob/vocabdrill/internal/scheduler"
	"github.com/robalobadob/vocabdrill/internal/store"
	"github.com/robalobadob/vocabdrill/internal/telemetry"
)

const driverMemory = "memory"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DBDriver == driverMemory {
			return errors.New("nothing to migrate for DB_DRIVER=memory")
		}
		db, err := database.OpenMigrated(cmd.Context(), cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		return db.Close()
	},
}

var adminHashCmd = &cobra.Command{
	Use:   "admin-hash <key>",
	Short: "Print the ADMIN_KEY_HASH value for an admin key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := httpserver.HashAdminKey(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), h)
		return nil
	},
}

// openStores returns the word store and the database holding daily counters.
// The memory driver keeps counters in an in-memory SQLite database.
func openStores(ctx context.Context, cfg config.Config) (store.Store, *sqlx.DB, error) {
	if cfg.DBDriver == driverMemory {
		db, err := database.OpenMigrated(ctx, database.DriverSQLite, ":memory:")
		if err != nil {
			return nil, nil, err
		}
		return store.NewMemoryStore(), db, nil
	}
	db, err := database.OpenMigrated(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSQLStore(db), db, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	shutdownTracing, err := telemetry.Setup(ctx, "vocabdrill", cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	ws, db, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []game.Option{
		game.WithParams(cfg.Game.Params()),
		game.WithRand(game.NewRand(cfg.Game.Seed)),
	}
	if cfg.ScoreWrites == config.ScoreWritesCAS {
		opts = append(opts, game.WithScores(game.CompareAndSwapScores(ws)))
	}
	engine, err := game.New(ws, opts...)
	if err != nil {
		return err
	}

	attempts := daily.NewStore(db)
	sched := scheduler.New(attempts, cfg.DailyRetentionDays)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer sched.Stop()

	if cfg.AdminKeyHash == "" {
		log.Warn().Msg("ADMIN_KEY_HASH not set; /admin routes disabled")
	}
	srv := httpserver.New(engine, ws, attempts, httpserver.Options{
		ClientOrigin:    cfg.ClientOrigin,
		PlayerSecret:    cfg.PlayerSecret,
		AdminKeyHash:    cfg.AdminKeyHash,
		Production:      cfg.Production,
		DailyTypeLimit:  cfg.DailyTypeLimit,
		DailyMatchLimit: cfg.DailyMatchLimit,
	})

	log.Info().
		Str("port", cfg.Port).
		Str("driver", cfg.DBDriver).
		Str("scoreWrites", cfg.ScoreWrites).
		Msg("starting vocabdrill")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
