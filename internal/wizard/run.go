package wizard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shredguard/shredguard/internal/rules"
)

// Run drives the wizard interactively and returns the user's choices.
func Run(defs []rules.Definition) (Result, error) {
	final, err := tea.NewProgram(NewModel(defs)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("error running setup wizard: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected wizard model type %T", final)
	}
	return m.Result(), nil
}
