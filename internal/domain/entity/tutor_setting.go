// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/paulmach/orb"
)

// TutorSetting is one tutor's row in the remote tutor_settings table.
// It is owned by the data store and never mutated by this service.
type TutorSetting struct {
	ID           string   `json:"id"`            // Opaque identifier assigned by the data store.
	GPSLat       float64  `json:"gps_lat"`       // Latitude of the tutor's geofence center.
	GPSLong      float64  `json:"gps_long"`      // Longitude of the tutor's geofence center.
	RadiusMeters float64  `json:"radius_meters"` // Geofence radius in meters.
	TrustScore   *float64 `json:"trust_score"`   // Nil when the column is missing or not numeric.
}

// Tier classifies the tutor by trust score. A missing score is treated as Probation.
func (t *TutorSetting) Tier() Tier {
	if t.TrustScore == nil {
		return TierProbation
	}

	return ClassifyTrustScore(*t.TrustScore)
}

// Location returns the geofence center as an orb point (longitude, latitude).
func (t *TutorSetting) Location() orb.Point {
	return orb.Point{t.GPSLong, t.GPSLat}
}

// Score is a convenience constructor for the optional trust score.
func Score(v float64) *float64 {
	return &v
}
