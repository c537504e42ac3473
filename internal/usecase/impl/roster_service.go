// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"basecamp/config"
	deliverycontext "basecamp/internal/delivery/context"
	"basecamp/internal/domain/entity"
	"basecamp/internal/domain/repository"
	"basecamp/internal/errors"
	"basecamp/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// RosterServiceParams holds dependencies for the roster service, injected by Fx.
type RosterServiceParams struct {
	fx.In

	Lc     fx.Lifecycle `optional:"true"`
	Repo   repository.TutorSettingRepository
	Config *config.Config
	Logger *slog.Logger
}

// rosterService implements the RosterUsecase interface.
type rosterService struct {
	repo         repository.TutorSettingRepository
	logger       *slog.Logger
	fetchTimeout time.Duration
	mountTTL     time.Duration
	now          func() time.Time

	mu     sync.Mutex
	mounts map[string]*rosterMount
	closed bool
}

// NewRosterService is the constructor for rosterService.
func NewRosterService(params RosterServiceParams) usecase.RosterUsecase {
	srv := &rosterService{
		repo:         params.Repo,
		logger:       params.Logger,
		fetchTimeout: params.Config.Dashboard.FetchTimeout,
		mountTTL:     params.Config.Dashboard.MountTTL,
		now:          time.Now,
		mounts:       make(map[string]*rosterMount),
	}
	if srv.fetchTimeout <= 0 {
		srv.fetchTimeout = config.DefaultFetchTimeout
	}
	if srv.mountTTL <= 0 {
		srv.mountTTL = config.DefaultMountTTL
	}

	if params.Lc != nil {
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				srv.Close()

				return nil
			},
		})
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *rosterService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Mount registers a new mount and starts its fetch in the background.
// The fetch keeps ctx's values but not its cancellation: it ends on Unmount or the fetch timeout.
func (srv *rosterService) Mount(ctx context.Context) usecase.RosterMount {
	srv.evictExpired()

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.fetchTimeout)
	mount := &rosterMount{
		id:       uuid.New().String(),
		status:   usecase.StatusLoading,
		active:   true,
		done:     make(chan struct{}),
		cancel:   cancel,
		lastSeen: srv.now(),
		release:  srv.release,
	}

	srv.mu.Lock()
	if srv.closed {
		srv.mu.Unlock()
		mount.Unmount()

		return mount
	}
	srv.mounts[mount.id] = mount
	srv.mu.Unlock()

	srv.log(ctx).Debug("Roster mounted", slog.String("mount_id", mount.id))

	go srv.fetch(fetchCtx, mount)

	return mount
}

// Lookup returns a live mount and marks it as recently observed.
func (srv *rosterService) Lookup(id string) (usecase.RosterMount, bool) {
	srv.evictExpired()

	srv.mu.Lock()
	defer srv.mu.Unlock()

	mount, ok := srv.mounts[id]
	if !ok {
		return nil, false
	}
	mount.touch(srv.now())

	return mount, true
}

// Close unmounts all live mounts and refuses new ones.
func (srv *rosterService) Close() {
	srv.mu.Lock()
	srv.closed = true
	mounts := make([]*rosterMount, 0, len(srv.mounts))
	for _, mount := range srv.mounts {
		mounts = append(mounts, mount)
	}
	srv.mu.Unlock()

	for _, mount := range mounts {
		mount.Unmount()
	}
}

func (srv *rosterService) fetch(ctx context.Context, mount *rosterMount) {
	defer mount.cancel()

	logger := srv.log(ctx).With(slog.String("mount_id", mount.id))
	ctx = deliverycontext.WithLogger(ctx, logger)
	start := srv.now()

	tutors, err := srv.repo.FindAll(ctx)
	if err != nil {
		message := errors.Cause(err).Error()
		if !mount.fail(message) {
			logger.Debug("Discarded roster failure of unmounted view", slog.String("error", message))

			return
		}
		logger.Warn("Roster fetch failed",
			slog.Any("error", err),
			slog.Duration("elapsed", srv.now().Sub(start)),
		)

		return
	}

	if !mount.succeed(tutors) {
		logger.Debug("Discarded roster of unmounted view", slog.Int("tutors", len(tutors)))

		return
	}
	logger.Info("Roster loaded",
		slog.Int("tutors", len(tutors)),
		slog.Duration("elapsed", srv.now().Sub(start)),
	)
}

func (srv *rosterService) release(id string) {
	srv.mu.Lock()
	delete(srv.mounts, id)
	srv.mu.Unlock()
}

func (srv *rosterService) evictExpired() {
	cutoff := srv.now().Add(-srv.mountTTL)

	srv.mu.Lock()
	var expired []*rosterMount
	for _, mount := range srv.mounts {
		if mount.seenBefore(cutoff) {
			expired = append(expired, mount)
		}
	}
	srv.mu.Unlock()

	for _, mount := range expired {
		srv.logger.Debug("Evicting idle roster mount", slog.String("mount_id", mount.id))
		mount.Unmount()
	}
}

// rosterMount implements usecase.RosterMount.
type rosterMount struct {
	id      string
	done    chan struct{}
	cancel  context.CancelFunc
	release func(id string)

	mu       sync.Mutex
	status   usecase.LoadStatus
	tutors   []*entity.TutorSetting
	errMsg   string
	active   bool
	settled  bool
	lastSeen time.Time
}

func (m *rosterMount) ID() string {
	return m.id
}

func (m *rosterMount) Done() <-chan struct{} {
	return m.done
}

func (m *rosterMount) Snapshot() usecase.RosterSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := usecase.RosterSnapshot{
		MountID: m.id,
		Status:  m.status,
	}

	switch m.status {
	case usecase.StatusReady:
		snapshot.Tutors = make([]*entity.TutorSetting, len(m.tutors))
		copy(snapshot.Tutors, m.tutors)
	case usecase.StatusError:
		snapshot.ErrorMessage = m.errMsg
	}

	return snapshot
}

func (m *rosterMount) Unmount() {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()

		return
	}
	m.active = false
	settled := m.settled
	m.settled = true
	m.mu.Unlock()

	m.cancel()
	if !settled {
		close(m.done)
	}
	if m.release != nil {
		m.release(m.id)
	}
}

// succeed applies a fetched roster if the mount is still live and loading.
func (m *rosterMount) succeed(tutors []*entity.TutorSetting) bool {
	if tutors == nil {
		tutors = []*entity.TutorSetting{}
	}

	return m.settle(func() {
		m.status = usecase.StatusReady
		m.tutors = tutors
	})
}

// fail applies a fetch error if the mount is still live and loading.
func (m *rosterMount) fail(message string) bool {
	return m.settle(func() {
		m.status = usecase.StatusError
		m.errMsg = message
	})
}

func (m *rosterMount) settle(apply func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || m.settled {
		return false
	}
	apply()
	m.settled = true
	close(m.done)

	return true
}

func (m *rosterMount) touch(now time.Time) {
	m.mu.Lock()
	m.lastSeen = now
	m.mu.Unlock()
}

func (m *rosterMount) seenBefore(cutoff time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastSeen.Before(cutoff)
}
