// Package ui renders results in the terminal and collects parameters.
package ui

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RunWithSpinner shows title while fn runs and prints a check mark when it
// succeeds.
func RunWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("✓ " + title))
	return nil
}
