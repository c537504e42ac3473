// Package view maps a roster snapshot to the dashboard shown by every surface.
package view

import (
	"strconv"

	"basecamp/internal/domain/entity"
	"basecamp/internal/usecase"
)

const (
	Title           = "BaseCamp Control Center"
	HealthIndicator = "SYSTEM HEALTHY"
	LoadingText     = "Loading roster..."
	ErrorPrefix     = "Error: "
)

// Placeholders shown beside the roster count. They are not derived from data.
const (
	ScheduledClassPlaceholder = 12
	SystemTrustPlaceholder    = "98%"
)

// Stat card labels in display order.
const (
	LabelOnField        = "On Field"
	LabelScheduledClass = "Scheduled Class"
	LabelSystemTrust    = "System Trust"
)

// Roster table column headers.
const (
	ColumnID     = "ID"
	ColumnRadius = "GPS Radius (m)"
	ColumnStatus = "Trust Status"
)

// Stats is the summary row of a ready dashboard.
type Stats struct {
	OnField        int    `json:"on_field"`
	ScheduledClass int    `json:"scheduled_class"`
	SystemTrust    string `json:"system_trust"`
}

// StatCard is one labeled value in the summary row.
type StatCard struct {
	Label string
	Value string
}

// Row is one roster table row.
type Row struct {
	ID         string
	Radius     string
	Tier       entity.Tier
	BadgeClass string
}

// Dashboard is the complete render input for one state of a mount.
type Dashboard struct {
	MountID      string
	Status       usecase.LoadStatus
	Title        string
	Health       string
	Viewer       string
	ErrorMessage string
	Stats        Stats
	Cards        []StatCard
	Rows         []Row
}

func (d Dashboard) Loading() bool { return d.Status == usecase.StatusLoading }
func (d Dashboard) Failed() bool  { return d.Status == usecase.StatusError }
func (d Dashboard) Ready() bool   { return d.Status == usecase.StatusReady }

// LoadingMessage is the single line shown while the roster is in flight.
func (Dashboard) LoadingMessage() string { return LoadingText }

// Columns are the roster table headers in display order.
func (Dashboard) Columns() []string {
	return []string{ColumnID, ColumnRadius, ColumnStatus}
}

// ErrorText is the single line shown in the error panel.
func (d Dashboard) ErrorText() string {
	return ErrorPrefix + d.ErrorMessage
}

// Build turns a snapshot into a dashboard. Loading and error dashboards carry no stats or rows.
func Build(snapshot usecase.RosterSnapshot) Dashboard {
	d := Dashboard{
		MountID: snapshot.MountID,
		Status:  snapshot.Status,
		Title:   Title,
		Health:  HealthIndicator,
	}

	switch snapshot.Status {
	case usecase.StatusError:
		d.ErrorMessage = snapshot.ErrorMessage
	case usecase.StatusReady:
		d.Stats = NewStats(snapshot.Tutors)
		d.Cards = d.Stats.Cards()
		d.Rows = Rows(snapshot.Tutors)
	}

	return d
}

// NewStats computes the summary for a fetched roster.
func NewStats(tutors []*entity.TutorSetting) Stats {
	return Stats{
		OnField:        len(tutors),
		ScheduledClass: ScheduledClassPlaceholder,
		SystemTrust:    SystemTrustPlaceholder,
	}
}

// Cards lists the stat cards in display order.
func (s Stats) Cards() []StatCard {
	return []StatCard{
		{Label: LabelOnField, Value: strconv.Itoa(s.OnField)},
		{Label: LabelScheduledClass, Value: strconv.Itoa(s.ScheduledClass)},
		{Label: LabelSystemTrust, Value: s.SystemTrust},
	}
}

// Rows keeps fetch order, one row per tutor.
func Rows(tutors []*entity.TutorSetting) []Row {
	rows := make([]Row, 0, len(tutors))
	for _, tutor := range tutors {
		tier := tutor.Tier()
		rows = append(rows, Row{
			ID:         tutor.ID,
			Radius:     FormatRadius(tutor.RadiusMeters),
			Tier:       tier,
			BadgeClass: BadgeClass(tier),
		})
	}

	return rows
}

// FormatRadius prints the radius with the fewest digits that round-trip, e.g. 50 or 12.5.
func FormatRadius(meters float64) string {
	return strconv.FormatFloat(meters, 'f', -1, 64)
}

// BadgeClass is the CSS class of a tier badge.
func BadgeClass(tier entity.Tier) string {
	switch tier {
	case entity.TierElite:
		return "badge badge-elite"
	case entity.TierStandard:
		return "badge badge-standard"
	default:
		return "badge badge-probation"
	}
}
