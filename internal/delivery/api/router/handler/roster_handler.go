package handler

import (
	"log/slog"
	"net/http"

	"basecamp/internal/delivery/api/response"
	"basecamp/internal/delivery/view"
	"basecamp/internal/domain/entity"
	domainerrors "basecamp/internal/domain/errors"
	"basecamp/internal/errors"
	"basecamp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/fx"
)

// MIMEApplicationGeoJSON is the media type of the geofence export.
const MIMEApplicationGeoJSON = "application/geo+json"

// RosterHandlerParams holds dependencies for RosterHandler, injected by Fx.
type RosterHandlerParams struct {
	fx.In

	RosterUC usecase.RosterUsecase
	Logger   *slog.Logger
}

// RosterHandler exposes the roster as JSON and GeoJSON.
type RosterHandler struct {
	rosterUC usecase.RosterUsecase
	logger   *slog.Logger
}

// NewRosterHandler is the constructor for RosterHandler
func NewRosterHandler(params RosterHandlerParams) *RosterHandler {
	return &RosterHandler{
		rosterUC: params.RosterUC,
		logger:   params.Logger,
	}
}

// RosterQuery filters the roster rows by tier.
type RosterQuery struct {
	Tier string `query:"tier" validate:"omitempty,tier"`
}

// TutorResponse is one roster row with its computed tier.
type TutorResponse struct {
	ID           string      `json:"id"`
	GPSLat       float64     `json:"gps_lat"`
	GPSLong      float64     `json:"gps_long"`
	RadiusMeters float64     `json:"radius_meters"`
	TrustScore   *float64    `json:"trust_score"`
	Tier         entity.Tier `json:"tier"`
}

// RosterResponse is the JSON form of a ready dashboard.
type RosterResponse struct {
	Stats  view.Stats      `json:"stats"`
	Tutors []TutorResponse `json:"tutors"`
}

// GetRoster returns stats for the whole roster and the rows matching ?tier=.
func (h *RosterHandler) GetRoster(c echo.Context) error {
	var query RosterQuery
	if err := c.Bind(&query); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid query parameters")
	}
	if err := c.Validate(&query); err != nil {
		return err
	}

	tutors, err := h.loadRoster(c)
	if err != nil {
		return err
	}

	resp := RosterResponse{
		Stats:  view.NewStats(tutors),
		Tutors: make([]TutorResponse, 0, len(tutors)),
	}
	for _, tutor := range tutors {
		tier := tutor.Tier()
		if query.Tier != "" && tier != entity.Tier(query.Tier) {
			continue
		}
		resp.Tutors = append(resp.Tutors, TutorResponse{
			ID:           tutor.ID,
			GPSLat:       tutor.GPSLat,
			GPSLong:      tutor.GPSLong,
			RadiusMeters: tutor.RadiusMeters,
			TrustScore:   tutor.TrustScore,
			Tier:         tier,
		})
	}

	return response.Success(c, http.StatusOK, resp)
}

// GetGeofences returns one GeoJSON point per tutor at its geofence center.
func (h *RosterHandler) GetGeofences(c echo.Context) error {
	tutors, err := h.loadRoster(c)
	if err != nil {
		return err
	}

	fc := geojson.NewFeatureCollection()
	for _, tutor := range tutors {
		feature := geojson.NewFeature(tutor.Location())
		feature.ID = tutor.ID
		feature.Properties["id"] = tutor.ID
		feature.Properties["radius_meters"] = tutor.RadiusMeters
		feature.Properties["tier"] = tutor.Tier().String()
		fc.Append(feature)
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode geofences")
	}

	return c.Blob(http.StatusOK, MIMEApplicationGeoJSON, body)
}

// loadRoster mounts, waits for the single fetch and unmounts.
func (h *RosterHandler) loadRoster(c echo.Context) ([]*entity.TutorSetting, error) {
	mount := h.rosterUC.Mount(c.Request().Context())
	defer mount.Unmount()

	snapshot := usecase.AwaitRoster(c.Request().Context(), mount)

	switch snapshot.Status {
	case usecase.StatusReady:
		return snapshot.Tutors, nil
	case usecase.StatusError:
		return nil, domainerrors.NewRosterFetchError(snapshot.ErrorMessage)
	default:
		return nil, domainerrors.ErrRosterNotReady
	}
}
