package cli

import (
	"github.com/DanRulev/flashquiz/internal/models"
	"github.com/charmbracelet/lipgloss"
)

// stylize applies optional color styling.
func stylize(r *lipgloss.Renderer, text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return r.NewStyle().Foreground(color).Render(text)
}

func outcomeColor(kind models.OutcomeKind) lipgloss.Color {
	switch kind {
	case models.OutcomeCorrect:
		return lipgloss.Color("42")
	case models.OutcomeIncorrect:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("220")
	}
}
