package usecase

import (
	"context"

	"basecamp/internal/domain/entity"
)

// LoadStatus is the tri-state of a roster mount.
type LoadStatus int

const (
	StatusLoading LoadStatus = iota
	StatusError
	StatusReady
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// RosterSnapshot is a read-only view of a mount at one point in time.
type RosterSnapshot struct {
	MountID      string
	Status       LoadStatus
	Tutors       []*entity.TutorSetting // Set only when Status is StatusReady; never nil then.
	ErrorMessage string                 // Set only when Status is StatusError.
}

// RosterMount is one attachment of a dashboard view. It owns exactly one fetch.
// Its status moves from loading to ready or error once and never changes again.
type RosterMount interface {
	// ID identifies the mount so later requests can observe it again.
	ID() string

	// Snapshot returns the current state.
	Snapshot() RosterSnapshot

	// Done is closed when the mount reaches ready or error, or is unmounted.
	Done() <-chan struct{}

	// Unmount detaches the mount. A fetch still in flight is canceled and its result discarded.
	Unmount()
}

// RosterUsecase mounts rosters and tracks the live ones.
type RosterUsecase interface {
	// Mount starts a new mount and its single fetch. It never blocks on the fetch.
	Mount(ctx context.Context) RosterMount

	// Lookup returns a live mount by ID.
	Lookup(id string) (RosterMount, bool)

	// Close unmounts every live mount.
	Close()
}

// AwaitRoster blocks until the mount settles or ctx is done, then returns its snapshot.
func AwaitRoster(ctx context.Context, mount RosterMount) RosterSnapshot {
	select {
	case <-mount.Done():
	case <-ctx.Done():
	}

	return mount.Snapshot()
}
