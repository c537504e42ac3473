package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"basecamp/config"
	deliverycontext "basecamp/internal/delivery/context"
	"basecamp/internal/delivery/view"
	"basecamp/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	RosterUC usecase.RosterUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// DashboardHandler serves the HTML dashboard.
type DashboardHandler struct {
	rosterUC     usecase.RosterUsecase
	loadingGrace time.Duration
	logger       *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	grace := params.Config.Dashboard.LoadingGrace
	if grace <= 0 {
		grace = config.DefaultLoadingGrace
	}

	return &DashboardHandler{
		rosterUC:     params.RosterUC,
		loadingGrace: grace,
		logger:       params.Logger,
	}
}

// ShowDashboard renders the dashboard for a new mount, or for the mount named by ?mount=.
// While the fetch is in flight the loading view links back to the same mount.
// A mount is unmounted once its ready or error view has been rendered.
func (h *DashboardHandler) ShowDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	mount := h.resolveMount(c)

	waitCtx, cancel := context.WithTimeout(ctx, h.loadingGrace)
	defer cancel()

	snapshot := usecase.AwaitRoster(waitCtx, mount)

	if ctx.Err() != nil {
		logger.Debug("Client left before the roster settled", slog.String("mount_id", mount.ID()))
		mount.Unmount()

		return nil
	}

	if snapshot.Status != usecase.StatusLoading {
		mount.Unmount()
	}

	dashboard := view.Build(snapshot)
	dashboard.Viewer = viewerOf(c)

	return c.Render(http.StatusOK, view.TemplateDashboard, dashboard)
}

// viewerOf names the signed-in admin, or returns "" when the guard is disabled.
func viewerOf(c echo.Context) string {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}

	return claims.Subject
}

func (h *DashboardHandler) resolveMount(c echo.Context) usecase.RosterMount {
	if id := c.QueryParam("mount"); id != "" {
		if mount, ok := h.rosterUC.Lookup(id); ok {
			return mount
		}
	}

	return h.rosterUC.Mount(c.Request().Context())
}
