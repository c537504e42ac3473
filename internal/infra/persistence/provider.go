// Package persistence selects the roster data source from configuration.
package persistence

import (
	"log/slog"

	"basecamp/config"
	"basecamp/internal/domain/repository"
	"basecamp/internal/infra/persistence/postgres"
	"basecamp/internal/infra/persistence/supabase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the tutor settings repository, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewTutorSettingRepository builds the repository for dashboard.source. The Postgres pool is
// only opened when the postgres source is selected.
func NewTutorSettingRepository(params Params) (repository.TutorSettingRepository, error) {
	cfg := params.Config

	switch cfg.Dashboard.Source {
	case config.SourcePostgres:
		params.Logger.Info("Using PostgreSQL roster source",
			slog.String("table", cfg.Dashboard.Table),
		)

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    cfg,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewTutorSettingRepository(db, cfg), nil

	case config.SourceSupabase:
		params.Logger.Info("Using Supabase REST roster source",
			slog.String("table", cfg.Dashboard.Table),
		)

		client, err := supabase.NewClient(cfg.Supabase, params.Logger)
		if err != nil {
			return nil, err
		}

		return supabase.NewTutorSettingRepository(client, cfg), nil

	default:
		return nil, errors.Errorf("unknown dashboard source: %s", cfg.Dashboard.Source)
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTutorSettingRepository),
)
