package commands

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	directoryColor = lipgloss.Color("12")
	rootColor      = lipgloss.Color("5")
)

// palette colours directory names and the root path. The renderer is pinned
// to the ANSI profile so colour does not depend on the output being a terminal.
type palette struct {
	enabled   bool
	directory lipgloss.Style
	root      lipgloss.Style
}

func newPalette(enabled bool) palette {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI)
	return palette{
		enabled:   enabled,
		directory: renderer.NewStyle().Foreground(directoryColor),
		root:      renderer.NewStyle().Foreground(rootColor),
	}
}

func (colors palette) directoryName(text string) string {
	if !colors.enabled {
		return text
	}
	return colors.directory.Render(text)
}

func (colors palette) rootPath(text string) string {
	if !colors.enabled {
		return text
	}
	return colors.root.Render(text)
}
