package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPoolMonitor(samples ...sql.DBStats) (*poolMonitor, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	i := 0
	monitor := &poolMonitor{
		stats: func() sql.DBStats {
			s := samples[i]
			if i < len(samples)-1 {
				i++
			}

			return s
		},
		logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}

	return monitor, buf
}

func TestPoolMonitor_Check(t *testing.T) {
	tests := []struct {
		name      string
		cur       sql.DBStats
		wantWaits bool
		wantLevel string
	}{
		{
			name:      "no new waits",
			cur:       sql.DBStats{WaitCount: 4, WaitDuration: 10 * time.Millisecond},
			wantWaits: false,
		},
		{
			name:      "short waits",
			cur:       sql.DBStats{WaitCount: 6, WaitDuration: 20 * time.Millisecond},
			wantWaits: true,
			wantLevel: "level=DEBUG",
		},
		{
			name:      "long waits",
			cur:       sql.DBStats{WaitCount: 8, WaitDuration: 210 * time.Millisecond},
			wantWaits: true,
			wantLevel: "level=WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitor, buf := newTestPoolMonitor(tt.cur)
			monitor.prev = sql.DBStats{WaitCount: 4, WaitDuration: 10 * time.Millisecond}

			assert.Equal(t, tt.wantWaits, monitor.check(context.Background()))
			assert.Equal(t, tt.cur, monitor.prev)

			if !tt.wantWaits {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), "Roster reads waited for a connection")
			assert.Contains(t, buf.String(), tt.wantLevel)
		})
	}
}

func TestPoolMonitor_CheckUsesLatestSample(t *testing.T) {
	monitor, buf := newTestPoolMonitor(
		sql.DBStats{WaitCount: 2, WaitDuration: time.Millisecond},
		sql.DBStats{WaitCount: 2, WaitDuration: time.Millisecond},
	)

	assert.True(t, monitor.check(context.Background()))
	assert.Contains(t, buf.String(), "waits=2")

	buf.Reset()
	assert.False(t, monitor.check(context.Background()))
	assert.Empty(t, buf.String())
}
