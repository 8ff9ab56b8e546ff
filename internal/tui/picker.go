// Package tui provides terminal user interface components for denbox
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/denbox-io/denbox/internal/runtime"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionEnter
	ActionStop
	ActionRemove
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action    Action
	Container *runtime.Summary
}

// keymap binds picker keys to lifecycle actions.
type keymap struct {
	enter  key.Binding
	stop   key.Binding
	remove key.Binding
	quit   key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Enter")),
		stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Stop")),
		remove: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Remove")),
		quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "Quit")),
	}
}

var (
	accentColor = lipgloss.Color("35")
	subtleColor = lipgloss.Color("243")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Foreground(subtleColor).MarginTop(1)
)

// projectItem adapts one container summary for the list widget. The
// project path is the headline; container details ride underneath.
type projectItem struct {
	runtime.Summary
}

func (i projectItem) Title() string { return displayPath(i.Project, 48) }

func (i projectItem) Description() string {
	return fmt.Sprintf("%s  %s  %s", stateLine(i.State), i.Name, i.Image)
}

func (i projectItem) FilterValue() string { return i.Project }

// stateLine matches the glyph convention of the status and ls output.
func stateLine(s runtime.State) string {
	if s == runtime.StateRunning {
		return "✓ running"
	}
	return "● stopped"
}

// displayPath shortens a project path to fit one list row: the home
// directory collapses to ~ and long paths keep their tail.
func displayPath(path string, width int) string {
	if home, err := os.UserHomeDir(); err == nil && home != "/" {
		if rest, ok := strings.CutPrefix(path, home); ok && (rest == "" || rest[0] == '/') {
			path = "~" + rest
		}
	}
	if len(path) <= width {
		return path
	}
	return "…" + path[len(path)-width+1:]
}

// Model drives the interactive project picker.
type Model struct {
	list     list.Model
	keys     keymap
	result   PickerResult
	quitting bool
}

// NewPicker builds a picker over the given container summaries.
func NewPicker(summaries []runtime.Summary) Model {
	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = projectItem{Summary: s}
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(accentColor).BorderForeground(accentColor)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(subtleColor).BorderForeground(accentColor)

	l := list.New(items, d, 80, 20)
	l.Title = "denbox projects"
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	// The footer renders its own hints from the keymap
	l.SetShowHelp(false)

	return Model{list: l, keys: defaultKeymap()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// The list owns every key while the filter prompt is open
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.quit):
			return m.finish(ActionQuit, nil)
		case key.Matches(msg, m.keys.enter):
			return m.choose(ActionEnter)
		case key.Matches(msg, m.keys.stop):
			return m.choose(ActionStop)
		case key.Matches(msg, m.keys.remove):
			return m.choose(ActionRemove)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// choose finishes with the selected container, or stays put when the
// list has nothing selected.
func (m Model) choose(action Action) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return m, nil
	}
	return m.finish(action, &item.Summary)
}

func (m Model) finish(action Action, c *runtime.Summary) (tea.Model, tea.Cmd) {
	m.result = PickerResult{Action: action, Container: c}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View() + "\n" + m.helpView()
}

// helpView renders the action hints from the keymap so the footer
// cannot drift from the bindings.
func (m Model) helpView() string {
	hints := make([]string, 0, 5)
	for _, b := range []key.Binding{m.keys.enter, m.keys.stop, m.keys.remove} {
		hints = append(hints, fmt.Sprintf("[%s] %s", b.Help().Key, b.Help().Desc))
	}
	hints = append(hints, "[/] Filter")
	hints = append(hints, fmt.Sprintf("[%s] %s", m.keys.quit.Help().Key, m.keys.quit.Help().Desc))
	return helpStyle.Render(strings.Join(hints, "  "))
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive container picker
func RunPicker(summaries []runtime.Summary) (PickerResult, error) {
	if len(summaries) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(summaries)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}
