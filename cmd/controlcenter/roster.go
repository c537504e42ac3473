package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"basecamp/config"
	"basecamp/internal/delivery/tui"
	"basecamp/internal/delivery/view"
	logs "basecamp/internal/infra/log"
	"basecamp/internal/infra/persistence"
	"basecamp/internal/usecase"
	"basecamp/internal/usecase/impl"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newRosterCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Show the tutor roster with trust tiers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			logFile, _ := cmd.Flags().GetString("log-file")

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logOutput, closeLog, err := openLogOutput(cmd, logFile, plain)
			if err != nil {
				return err
			}
			defer closeLog()

			var roster usecase.RosterUsecase
			app := fx.New(
				fx.NopLogger,
				fx.Supply(cfg),
				fx.Provide(
					func() io.Writer { return logOutput },
					logs.New,
					impl.NewRosterService,
				),
				persistence.Module,
				fx.Populate(&roster),
			)
			if err := app.Err(); err != nil {
				return errors.Wrap(err, "failed to build roster dependencies")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if err := app.Start(ctx); err != nil {
				return errors.Wrap(err, "failed to start roster dependencies")
			}
			defer func() {
				_ = app.Stop(context.Background())
			}()

			if plain {
				return printPlain(ctx, cmd.OutOrStdout(), roster)
			}

			return runInteractive(ctx, roster)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "wait for the roster and print the dashboard once")

	return cmd
}

// loadConfig reads an explicit file when given, otherwise searches the default locations.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.New()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve config path")
	}
	name := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))

	return config.Load(name, filepath.Dir(abs))
}

func openLogOutput(cmd *cobra.Command, path string, plain bool) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}

		return f, func() { _ = f.Close() }, nil
	}
	if plain {
		return cmd.ErrOrStderr(), func() {}, nil
	}

	return io.Discard, func() {}, nil
}

func printPlain(ctx context.Context, out io.Writer, roster usecase.RosterUsecase) error {
	mount := roster.Mount(ctx)
	defer mount.Unmount()

	d := view.Build(usecase.AwaitRoster(ctx, mount))
	if _, err := fmt.Fprintln(out, tui.Render(d, 0)); err != nil {
		return errors.WithStack(err)
	}
	if d.Failed() {
		return errors.New("roster fetch failed")
	}

	return nil
}

func runInteractive(ctx context.Context, roster usecase.RosterUsecase) error {
	model, _ := tui.NewModel(ctx, roster)

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return errors.Wrap(err, "run dashboard")
	}

	return nil
}
