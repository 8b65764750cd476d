package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivlev/typingvid/internal/config"
	"github.com/ivlev/typingvid/internal/layout"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4"))

	nameStyle = lipgloss.NewStyle().
		Bold(true).
		Width(16)

	defaultStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))

	modeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000"))
)

// printLayouts lists every layout in dir with its display mode.
func printLayouts(w io.Writer, dir string) error {
	names, err := layout.List(dir)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Layouts in %s", dir)))
	if len(names) == 0 {
		fmt.Fprintln(w, modeStyle.Render("  (none)"))
		return nil
	}

	for _, name := range names {
		label := nameStyle.Render(name)
		if name == config.DefaultLayout {
			label = nameStyle.Inherit(defaultStyle).Render(name + " *")
		}

		l, err := layout.Load(dir, name)
		if err != nil {
			fmt.Fprintf(w, "  %s %s\n", label, errorStyle.Render(err.Error()))
			continue
		}
		mode, _ := l.Mode()
		fmt.Fprintf(w, "  %s %s\n", label, modeStyle.Render(fmt.Sprintf("%s (%s)", mode, l.File)))
	}
	return nil
}
