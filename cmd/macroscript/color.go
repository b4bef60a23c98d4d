package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
)

// Carried from dingo's CLI presentation layer (lipgloss for styling,
// go-isatty to detect a non-TTY destination and fall back to plain
// text), per SPEC_FULL.md §3.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
)

func renderError(msg string) string {
	if !colorEnabled {
		return msg
	}
	return errorStyle.Render(msg)
}

func renderSuccess(msg string) string {
	if !colorEnabled {
		return msg
	}
	return successStyle.Render(msg)
}
