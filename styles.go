package linkbox

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles the widgets render with. Callers can
// replace individual entries before composing views.
type Styles struct {
	Link        lipgloss.Style
	LinkFocused lipgloss.Style
	Icon        lipgloss.Style
	IconActive  lipgloss.Style
	Status      lipgloss.Style
	PlayStop    lipgloss.Style
	Elapsed     lipgloss.Style
	Toggle      lipgloss.Style
	Remove      lipgloss.Style
	Cursor      lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
}

var (
	primary   = lipgloss.Color("99")  // purple
	secondary = lipgloss.Color("240") // gray
	accent    = lipgloss.Color("86")  // green
	danger    = lipgloss.Color("196") // red
)

// DefaultStyles returns the stock widget styles.
func DefaultStyles() Styles {
	return Styles{
		Link: lipgloss.NewStyle().
			Foreground(primary).
			Underline(true),

		LinkFocused: lipgloss.NewStyle().
			Foreground(accent).
			Underline(true).
			Bold(true),

		Icon: lipgloss.NewStyle().
			Padding(0, 1, 0, 0),

		IconActive: lipgloss.NewStyle().
			Padding(0, 1, 0, 0).
			Underline(true),

		Status: lipgloss.NewStyle().
			Padding(0, 1, 0, 0),

		PlayStop: lipgloss.NewStyle().
			Foreground(primary).
			Padding(0, 1, 0, 0),

		Elapsed: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),

		Toggle: lipgloss.NewStyle().
			Padding(0, 1, 0, 0),

		Remove: lipgloss.NewStyle().
			Foreground(danger).
			Padding(0, 0, 0, 1),

		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Muted: lipgloss.NewStyle().
			Foreground(secondary),

		Error: lipgloss.NewStyle().
			Foreground(danger),
	}
}
