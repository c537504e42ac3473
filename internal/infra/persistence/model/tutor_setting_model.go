// Package model holds the GORM-specific row types.
package model

// TutorSettingModel is the GORM-specific struct for the 'tutor_settings' table.
// Numeric columns are read leniently so one malformed cell does not fail the whole read.
type TutorSettingModel struct {
	ID           string         `gorm:"column:id;primaryKey"`
	GPSLat       LenientFloat64 `gorm:"column:gps_lat"`
	GPSLong      LenientFloat64 `gorm:"column:gps_long"`
	RadiusMeters LenientFloat64 `gorm:"column:radius_meters"`
	TrustScore   LenientFloat64 `gorm:"column:trust_score"`
}

// TableName explicitly sets the table name for GORM.
func (TutorSettingModel) TableName() string {
	return "tutor_settings"
}
