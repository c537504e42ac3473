package tui

import (
	"strings"

	"basecamp/internal/delivery/view"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const statusColumn = 2

// Render draws a dashboard for the terminal. Width 0 lets the table size itself.
func Render(d view.Dashboard, width int) string {
	switch {
	case d.Loading():
		return SubtleStyle.Render(d.LoadingMessage())
	case d.Failed():
		return ErrorStyle.Render(d.ErrorText())
	default:
		return renderReady(d, width)
	}
}

func renderReady(d view.Dashboard, width int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		TitleStyle.Render(d.Title),
		"  ",
		HealthStyle.Render(d.Health),
	)

	cards := make([]string, 0, len(d.Cards))
	for _, card := range d.Cards {
		cards = append(cards, CardStyle.Render(
			LabelStyle.Render(card.Label)+"\n"+ValueStyle.Render(card.Value),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		renderTable(d, width),
	)
}

func renderTable(d view.Dashboard, width int) string {
	rows := d.Rows
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(d.Columns()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderCellStyle
			case col == statusColumn && row >= 0 && row < len(rows):
				return TierStyle(rows[row].Tier)
			default:
				return CellStyle
			}
		})

	for _, r := range rows {
		t.Row(r.ID, r.Radius, r.Tier.String())
	}
	if width > 0 {
		t.Width(width)
	}

	return strings.TrimRight(t.Render(), "\n")
}
