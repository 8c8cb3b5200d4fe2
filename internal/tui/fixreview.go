package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FixItem is one proposed symbol change shown in the review list.
type FixItem struct {
	Symbol string
	From   string
	To     string
}

// FixReviewModel is the bubbletea model for the interactive fix review
type FixReviewModel struct {
	items     []FixItem
	selected  []bool
	cursor    int
	confirmed bool
	cancelled bool
	keys      fixReviewKeyMap
	help      help.Model
	styles    fixReviewStyles
}

type fixReviewStyles struct {
	titleStyle    lipgloss.Style
	cursorStyle   lipgloss.Style
	symbolStyle   lipgloss.Style
	checkedStyle  lipgloss.Style
	dimStyle      lipgloss.Style
	selectedStyle lipgloss.Style
}

type fixReviewKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k fixReviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.None, k.Confirm, k.Cancel}
}

func (k fixReviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.All, k.None, k.Confirm, k.Cancel},
	}
}

// NewFixReviewModel creates a review model with all changes pre-selected
func NewFixReviewModel(items []FixItem) FixReviewModel {
	selected := make([]bool, len(items))
	for i := range selected {
		selected[i] = true
	}

	return FixReviewModel{
		items:    items,
		selected: selected,
		keys: fixReviewKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Toggle: key.NewBinding(
				key.WithKeys(" "),
				key.WithHelp("space", "toggle"),
			),
			All: key.NewBinding(
				key.WithKeys("a"),
				key.WithHelp("a", "select all"),
			),
			None: key.NewBinding(
				key.WithKeys("n"),
				key.WithHelp("n", "select none"),
			),
			Confirm: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "apply"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "cancel"),
			),
		},
		help: help.New(),
		styles: fixReviewStyles{
			titleStyle:    lipgloss.NewStyle().Bold(true),
			cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
			symbolStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			checkedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
	}
}

func (m FixReviewModel) Init() tea.Cmd {
	return nil
}

func (m FixReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.items) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}

	case key.Matches(keyMsg, m.keys.All):
		for i := range m.selected {
			m.selected[i] = true
		}

	case key.Matches(keyMsg, m.keys.None):
		for i := range m.selected {
			m.selected[i] = false
		}

	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirmed = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m FixReviewModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder

	count := 0
	for _, sel := range m.selected {
		if sel {
			count++
		}
	}

	title := fmt.Sprintf("Review %d proposed symbol change(s)", len(m.items))
	b.WriteString(m.styles.titleStyle.Render(title))
	b.WriteString(" ")
	b.WriteString(m.styles.dimStyle.Render(fmt.Sprintf("(%d selected)", count)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.cursorStyle.Render("> ")
		}

		check := "[ ]"
		if m.selected[i] {
			check = m.styles.checkedStyle.Render("[x]")
		}

		change := m.styles.selectedStyle.Render(fmt.Sprintf("%s -> %s", item.From, item.To))
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, check, m.styles.symbolStyle.Render(item.Symbol), change))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the per-item accepted flags
func (m FixReviewModel) Selected() []bool {
	return m.selected
}

// Cancelled reports whether the user aborted the review
func (m FixReviewModel) Cancelled() bool {
	return m.cancelled
}

// ReviewFixes runs the interactive checklist and returns the accepted flags,
// one per item. A cancelled review returns all-false flags.
func ReviewFixes(items []FixItem) ([]bool, error) {
	if len(items) == 0 {
		return nil, nil
	}

	model := NewFixReviewModel(items)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run fix review: %w", err)
	}

	result, ok := final.(FixReviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from fix review")
	}

	if result.Cancelled() {
		return make([]bool, len(items)), nil
	}

	return result.Selected(), nil
}
