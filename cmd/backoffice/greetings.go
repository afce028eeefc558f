package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var greetingCommands = []struct{ cmd, desc string }{
	{"backoffice login --email <email>", "Sign in (password is prompted)"},
	{"backoffice status", "Show the current session"},
	{"backoffice categories tree", "Print the category hierarchy"},
	{"backoffice upload <file>", "Upload an image, print its URL"},
	{"backoffice logout", "Clear the session"},
	{"backoffice version", "Show version"},
}

// printGreeting is shown instead of the dashboard when there is no usable
// session.
func printGreeting(w io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("B A C K O F F I C E")

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("You are not signed in.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n", title, note)
	for _, c := range greetingCommands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-34s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintln(w)
}
