package tui

import (
	"basecamp/internal/domain/entity"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
var (
	colorSlate   = lipgloss.Color("#0F172A")
	colorMuted   = lipgloss.Color("#64748B")
	colorBorder  = lipgloss.Color("#E2E8F0")
	colorHealthy = lipgloss.Color("#10B981")
	colorElite   = lipgloss.Color("#1D4ED8")
	colorNeutral = lipgloss.Color("#334155")
	colorDanger  = lipgloss.Color("#DC2626")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSlate)

	HealthStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorHealthy).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginRight(1)

	LabelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	ValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorSlate)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	SubtleStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	SpinnerStyle = lipgloss.NewStyle().Foreground(colorHealthy)

	HeaderCellStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMuted).Padding(0, 1)
	CellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

// TierStyle colors a trust badge.
func TierStyle(tier entity.Tier) lipgloss.Style {
	switch tier {
	case entity.TierElite:
		return CellStyle.Bold(true).Foreground(colorElite)
	case entity.TierStandard:
		return CellStyle.Foreground(colorNeutral)
	default:
		return CellStyle.Bold(true).Foreground(colorDanger)
	}
}
