package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sf044/vitalsync/internal/domain"
)

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// tierStyle colors a parameter value by its alarm tier.
func tierStyle(t domain.AlarmTier) lipgloss.Style {
	switch t {
	case domain.TierHighCritical, domain.TierLowCritical:
		return critStyle
	case domain.TierHighWarning, domain.TierLowWarning:
		return warnStyle
	default:
		return okStyle
	}
}

// traceStyle maps a channel's configured RGB color onto a lipgloss style.
func traceStyle(c domain.Color) lipgloss.Style {
	switch {
	case c.G == 255 && c.R == 0 && c.B == 0:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case c.R == 255 && c.G == 255 && c.B == 0:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case c.G == 255 && c.B == 255 && c.R == 0:
		return lipgloss.NewStyle().Foreground(colorCyan)
	case c.R == 255 && c.G == 0 && c.B == 0:
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return lipgloss.NewStyle().Foreground(colorWhite)
	}
}

// statusStyle colors the connection badge.
func statusStyle(s domain.ConnectionStatus) lipgloss.Style {
	switch s {
	case domain.Connected:
		return okStyle
	case domain.Connecting:
		return warnStyle
	case domain.ConnectionError:
		return critStyle
	default:
		return dimStyle
	}
}
