package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"basecamp/config"
	"basecamp/internal/domain/entity"
	mockRepo "basecamp/internal/mocks/repository"
	"basecamp/internal/usecase"
	"basecamp/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRoster(t *testing.T) (usecase.RosterUsecase, *mockRepo.MockTutorSettingRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Dashboard.FetchTimeout = time.Second
	cfg.Dashboard.MountTTL = time.Minute

	repo := mockRepo.NewMockTutorSettingRepository(t)
	roster := impl.NewRosterService(impl.RosterServiceParams{
		Repo:   repo,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	t.Cleanup(roster.Close)

	return roster, repo
}

func TestPrintPlain_Ready(t *testing.T) {
	roster, repo := newTestRoster(t)
	repo.EXPECT().FindAll(mock.Anything).Return([]*entity.TutorSetting{
		{ID: "a", RadiusMeters: 50, TrustScore: entity.Score(120)},
		{ID: "b", RadiusMeters: 10, TrustScore: entity.Score(30)},
	}, nil).Once()

	var out bytes.Buffer
	require.NoError(t, printPlain(context.Background(), &out, roster))

	assert.Contains(t, out.String(), "BaseCamp Control Center")
	assert.Contains(t, out.String(), "On Field")
	assert.Contains(t, out.String(), "Elite")
	assert.Contains(t, out.String(), "Probation")
}

func TestPrintPlain_Error(t *testing.T) {
	roster, repo := newTestRoster(t)
	repo.EXPECT().FindAll(mock.Anything).Return(nil, errors.New("network unreachable")).Once()

	var out bytes.Buffer
	err := printPlain(context.Background(), &out, roster)

	require.Error(t, err)
	assert.Contains(t, out.String(), "Error: network unreachable")
	assert.NotContains(t, out.String(), "On Field")
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dashboard:
  source: supabase
supabase:
  url: https://example.supabase.co
  apiKey: anon-key
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, config.SourceSupabase, cfg.Dashboard.Source)
	assert.Equal(t, "https://example.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, config.DefaultTable, cfg.Dashboard.Table)
}

func TestRootCmd_HasRosterCommand(t *testing.T) {
	root := newRootCmd()

	cmd, _, err := root.Find([]string{"roster"})
	require.NoError(t, err)
	assert.Equal(t, "roster", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("plain"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
