package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"basecamp/config"
	"basecamp/internal/domain/entity"
	"basecamp/internal/domain/repository"
	"basecamp/internal/infra/persistence/model"

	"github.com/pkg/errors"
)

// tutorSettingRow is one element of the REST response. Unknown columns are ignored.
type tutorSettingRow struct {
	ID           json.RawMessage      `json:"id"`
	GPSLat       model.LenientFloat64 `json:"gps_lat"`
	GPSLong      model.LenientFloat64 `json:"gps_long"`
	RadiusMeters model.LenientFloat64 `json:"radius_meters"`
	TrustScore   model.LenientFloat64 `json:"trust_score"`
}

type tutorSettingRepository struct {
	client *Client
	table  string
}

// NewTutorSettingRepository creates the REST-backed tutor settings repository.
func NewTutorSettingRepository(client *Client, cfg *config.Config) repository.TutorSettingRepository {
	table := cfg.Dashboard.Table
	if table == "" {
		table = model.TutorSettingModel{}.TableName()
	}

	return &tutorSettingRepository{
		client: client,
		table:  table,
	}
}

// FindAll returns all rows in the order the REST endpoint returned them.
func (repo *tutorSettingRepository) FindAll(ctx context.Context) ([]*entity.TutorSetting, error) {
	var rows []tutorSettingRow
	if err := repo.client.SelectAll(ctx, repo.table, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to select tutor settings")
	}

	tutors := make([]*entity.TutorSetting, 0, len(rows))
	for i := range rows {
		tutors = append(tutors, rows[i].toDomain())
	}

	return tutors, nil
}

func (r *tutorSettingRow) toDomain() *entity.TutorSetting {
	return &entity.TutorSetting{
		ID:           decodeID(r.ID),
		GPSLat:       r.GPSLat.OrZero(),
		GPSLong:      r.GPSLong.OrZero(),
		RadiusMeters: r.RadiusMeters.OrZero(),
		TrustScore:   r.TrustScore.Ptr(),
	}
}

// decodeID renders string ids unquoted and any other JSON scalar (e.g. bigint keys) verbatim.
func decodeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.TrimSpace(string(raw))
}
