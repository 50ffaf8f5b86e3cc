package focal

import "github.com/charmbracelet/lipgloss"

// Chrome carries presentation passthrough for a region: a lipgloss
// style and a class name the host renderer may apply around the
// region's content. Chrome never affects focus behavior.
type Chrome struct {
	Style lipgloss.Style
	Class string
}
