package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"basecamp/config"
	apimiddleware "basecamp/internal/delivery/api/middleware"
	"basecamp/internal/delivery/api/router"
	"basecamp/internal/delivery/api/router/handler"
	deliverycontext "basecamp/internal/delivery/context"
	"basecamp/internal/domain/entity"
	"basecamp/internal/domain/service"
	"basecamp/internal/infra/auth"
	mockRepo "basecamp/internal/mocks/repository"
	"basecamp/internal/usecase/impl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_key_very_long_for_testing"

func newTestServer(t *testing.T) (*echo.Echo, *mockRepo.MockTutorSettingRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			Enabled:      true,
			JWTSecret:    testSecret,
			RequiredRole: "service_role",
			CookieName:   config.DefaultCookieName,
		},
	}
	cfg.Dashboard.FetchTimeout = time.Second
	cfg.Dashboard.LoadingGrace = time.Second
	cfg.Dashboard.MountTTL = time.Minute

	repo := mockRepo.NewMockTutorSettingRepository(t)
	rosterUC := impl.NewRosterService(impl.RosterServiceParams{Repo: repo, Config: cfg, Logger: logger})
	t.Cleanup(rosterUC.Close)

	e, err := NewEcho(cfg, logger)
	require.NoError(t, err)

	router.NewRouter(router.RouterParams{
		DashboardHandler: handler.NewDashboardHandler(handler.DashboardHandlerParams{RosterUC: rosterUC, Config: cfg, Logger: logger}),
		RosterHandler:    handler.NewRosterHandler(handler.RosterHandlerParams{RosterUC: rosterUC, Logger: logger}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			TokenSvc: auth.NewJWTService(cfg),
			Config:   cfg,
			Logger:   logger,
		}),
	}).RegisterRoutes(e)

	return e, repo
}

func adminToken(t *testing.T) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.AccessClaims{
		Role: "service_role",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return token
}

func TestServer_HealthIsPublic(t *testing.T) {
	e, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_GuardedRoutesRequireToken(t *testing.T) {
	e, _ := newTestServer(t)

	for _, target := range []string{"/", "/api/v1/roster", "/api/v1/roster/geofences"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "TOKEN_MISSING", target)
	}
}

func TestServer_DashboardWithSessionCookie(t *testing.T) {
	e, repo := newTestServer(t)
	repo.EXPECT().FindAll(mock.Anything).Return([]*entity.TutorSetting{
		{ID: "a", RadiusMeters: 50, TrustScore: entity.Score(120)},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: config.DefaultCookieName, Value: adminToken(t)})
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Contains(t, rec.Body.String(), `<span class="badge badge-elite">Elite</span>`)
}

func TestServer_RosterWithBearerToken(t *testing.T) {
	e, repo := newTestServer(t)
	repo.EXPECT().FindAll(mock.Anything).Return([]*entity.TutorSetting{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roster", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken(t))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"data": {"stats": {"on_field": 0, "scheduled_class": 12, "system_trust": "98%"}, "tutors": []},
		"meta": {"request_id": "`+rec.Header().Get(deliverycontext.HeaderXRequestID)+`"}
	}`, rec.Body.String())
}
