package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Header1   lipgloss.Style
	Header2   lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Path      lipgloss.Style
	RuleID    lipgloss.Style
	StatusBar lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2:   r.NewStyle().Bold(true).Underline(true),
		Bold:      r.NewStyle().Bold(true),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("8")),
		Success:   r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:      r.NewStyle().Foreground(lipgloss.Color("14")),
		Path:      r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		RuleID:    r.NewStyle().Bold(true),
		StatusBar: r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}
