// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#00AAAA")
	errorColor  = lipgloss.Color("#A40000")
	mutedColor  = lipgloss.Color("#888888")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Bold(true)
)

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: ")+err.Error())
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintln(w, "  "+keyStyle.Render(key)+valueStyle.Render(fmt.Sprint(value)))
}
