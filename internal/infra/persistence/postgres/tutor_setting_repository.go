package postgres

import (
	"context"

	"basecamp/config"
	"basecamp/internal/domain/entity"
	"basecamp/internal/domain/repository"
	"basecamp/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// tutorSettingRepository implements the repository.TutorSettingRepository interface.
type tutorSettingRepository struct {
	db    *gorm.DB
	table string
}

// NewTutorSettingRepository is the constructor for tutorSettingRepository.
func NewTutorSettingRepository(db *gorm.DB, cfg *config.Config) repository.TutorSettingRepository {
	table := cfg.Dashboard.Table
	if table == "" {
		table = model.TutorSettingModel{}.TableName()
	}

	return &tutorSettingRepository{
		db:    db,
		table: table,
	}
}

// FindAll issues SELECT * against the table, with no filter or ordering.
func (repo *tutorSettingRepository) FindAll(ctx context.Context) ([]*entity.TutorSetting, error) {
	var tutorModels []*model.TutorSettingModel

	if err := repo.db.WithContext(ctx).
		Table(repo.table).
		Find(&tutorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find tutor settings")
	}

	tutors := make([]*entity.TutorSetting, 0, len(tutorModels))
	for _, tutorM := range tutorModels {
		tutors = append(tutors, toTutorSettingDomain(tutorM))
	}

	return tutors, nil
}

// --- Mapper Functions ---

// toTutorSettingDomain converts a GORM TutorSettingModel to a domain TutorSetting entity.
func toTutorSettingDomain(data *model.TutorSettingModel) *entity.TutorSetting {
	if data == nil {
		return nil
	}

	return &entity.TutorSetting{
		ID:           data.ID,
		GPSLat:       data.GPSLat.OrZero(),
		GPSLong:      data.GPSLong.OrZero(),
		RadiusMeters: data.RadiusMeters.OrZero(),
		TrustScore:   data.TrustScore.Ptr(),
	}
}
