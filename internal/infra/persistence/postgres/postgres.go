// Package postgres reads the roster straight from the Supabase Postgres database through GORM.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"basecamp/config"
	"basecamp/internal/domain/lifecycle"
	"basecamp/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval     = 5 * time.Second
	poolWaitWarnThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the pool for the roster table. The pool is pinged on start, watched for
// connection waits while running and closed on stop.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open roster database")
	}
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get roster database handle")
	}

	logger := params.Logger.With(
		slog.String("source", config.SourcePostgres),
		slog.String("table", params.Config.Dashboard.Table),
	)
	monitor := &poolMonitor{stats: sqlDB.Stats, logger: logger}
	monitorCtx, stopMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to reach roster database")
			}
			logger.Info("Roster database reachable",
				slog.Int("replicas", len(params.Config.Postgres.Replicas)),
			)

			go monitor.run(monitorCtx, poolCheckInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopMonitor()

			return errors.Wrap(sqlDB.Close(), "failed to close roster database")
		},
	})

	return db, nil
}

// poolMonitor reports when roster reads had to wait for a free connection.
type poolMonitor struct {
	stats  func() sql.DBStats
	logger *slog.Logger
	prev   sql.DBStats
}

func (m *poolMonitor) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.prev = m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check compares the pool against the previous sample. It reports whether waits were seen.
func (m *poolMonitor) check(ctx context.Context) bool {
	cur := m.stats()
	prev := m.prev
	m.prev = cur

	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return false
	}
	waited := cur.WaitDuration - prev.WaitDuration

	level := slog.LevelDebug
	if waited >= poolWaitWarnThreshold {
		level = slog.LevelWarn
	}
	m.logger.LogAttrs(ctx, level, "Roster reads waited for a connection",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("open_conns", cur.OpenConnections),
		slog.Int("in_use_conns", cur.InUse),
		slog.Int("max_open_conns", cur.MaxOpenConnections),
	)

	return true
}
