// Package wizard is the interactive setup flow behind `shredguard init`. It
// walks through pattern selection, pseudonym prefix, and repo integration
// choices, then hands a Result back to the command for writing.
package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shredguard/shredguard/internal/rules"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Background(lipgloss.Color("236"))
)

type step int

const (
	stepPatterns step = iota
	stepPrefix
	stepExtras
	stepDone
)

// Result is what the wizard hands back once the user confirms.
type Result struct {
	Definitions   []rules.Definition
	Prefix        string
	InstallHook   bool
	AppendIgnores bool
	CopyConfig    bool
	Accepted      bool
}

// Model is the wizard's bubbletea state machine.
type Model struct {
	step     step
	defs     []rules.Definition
	selected map[int]bool
	cursor   int

	prefixInput textinput.Model

	extras      [3]bool // 0: pre-commit hook, 1: gitignore entries, 2: clipboard copy
	extraCursor int

	accepted bool
	quitting bool
	errMsg   string
}

// NewModel builds a wizard over the given catalog of starter patterns.
func NewModel(defs []rules.Definition) Model {
	ti := textinput.New()
	ti.Placeholder = "REDACTED"
	ti.CharLimit = 32
	ti.Width = 32

	selected := make(map[int]bool, len(defs))
	for i := range defs {
		selected[i] = true
	}
	return Model{
		defs:        defs,
		selected:    selected,
		prefixInput: ti,
		extras:      [3]bool{true, true, false},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		if m.step != stepPrefix || keyMsg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case "esc":
		m.quitting = true
		return m, tea.Quit
	}

	switch m.step {
	case stepPatterns:
		return m.updatePatterns(keyMsg)
	case stepPrefix:
		return m.updatePrefix(keyMsg)
	case stepExtras:
		return m.updateExtras(keyMsg)
	}
	return m, nil
}

func (m Model) updatePatterns(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.defs)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
		m.errMsg = ""
	case "a":
		all := true
		for i := range m.defs {
			if !m.selected[i] {
				all = false
				break
			}
		}
		for i := range m.defs {
			m.selected[i] = !all
		}
	case "enter":
		if m.selectedCount() == 0 {
			m.errMsg = "select at least one pattern"
			return m, nil
		}
		m.step = stepPrefix
		m.prefixInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updatePrefix(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.prefixInput.Blur()
		m.step = stepExtras
		return m, nil
	}
	var cmd tea.Cmd
	m.prefixInput, cmd = m.prefixInput.Update(msg)
	return m, cmd
}

func (m Model) updateExtras(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.extraCursor > 0 {
			m.extraCursor--
		}
	case "down", "j":
		if m.extraCursor < len(m.extras)-1 {
			m.extraCursor++
		}
	case " ":
		m.extras[m.extraCursor] = !m.extras[m.extraCursor]
	case "enter":
		m.accepted = true
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) selectedCount() int {
	n := 0
	for i := range m.defs {
		if m.selected[i] {
			n++
		}
	}
	return n
}

// Result collects the final choices. Accepted is false when the user quit
// before confirming.
func (m Model) Result() Result {
	r := Result{
		Prefix:        strings.TrimSpace(m.prefixInput.Value()),
		InstallHook:   m.extras[0],
		AppendIgnores: m.extras[1],
		CopyConfig:    m.extras[2],
		Accepted:      m.accepted,
	}
	if r.Prefix == "" {
		r.Prefix = "REDACTED"
	}
	for i, d := range m.defs {
		if m.selected[i] {
			r.Definitions = append(r.Definitions, d)
		}
	}
	return r
}

func (m Model) View() string {
	if m.quitting || m.step == stepDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("shredguard init"))
	b.WriteString("\n\n")

	switch m.step {
	case stepPatterns:
		b.WriteString("Select the PHI patterns to scan for:\n\n")
		for i, d := range m.defs {
			cursor := "  "
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
			}
			box := "[ ]"
			if m.selected[i] {
				box = checkedStyle.Render("[x]")
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, box, d.Description)
			if i == m.cursor {
				fmt.Fprintf(&b, "      %s\n", dimStyle.Render(d.Regex))
			}
		}
		if m.errMsg != "" {
			b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.errMsg) + "\n")
		}
		b.WriteString("\n" + helpStyle.Render(" space toggle · a all · enter next · q quit "))
	case stepPrefix:
		b.WriteString("Pseudonym prefix (replacements look like PREFIX-0, PREFIX-1, ...):\n\n")
		b.WriteString("  " + m.prefixInput.View() + "\n")
		b.WriteString("\n" + helpStyle.Render(" enter next · esc quit "))
	case stepExtras:
		labels := [3]string{
			"Add a shredguard hook to .pre-commit-config.yaml",
			"Add pseudonym map and baseline files to .gitignore",
			"Copy the generated config to the clipboard",
		}
		b.WriteString("Repo integration:\n\n")
		for i, label := range labels {
			cursor := "  "
			if i == m.extraCursor {
				cursor = cursorStyle.Render("> ")
			}
			box := "[ ]"
			if m.extras[i] {
				box = checkedStyle.Render("[x]")
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, box, label)
		}
		b.WriteString("\n" + helpStyle.Render(" space toggle · enter write config · q quit "))
	}
	b.WriteString("\n")
	return b.String()
}
