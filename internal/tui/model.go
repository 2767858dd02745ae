// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end for a search session. It
// owns no search state of its own: every key press maps to a Session action
// and every frame is rendered from a Session snapshot.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/lapsed-patents/internal/patentid"
	"github.com/pdiddy/lapsed-patents/internal/present"
	"github.com/pdiddy/lapsed-patents/internal/session"
	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// Input field indexes.
const (
	fieldText = iota
	fieldYearFrom
	fieldYearTo
	fieldCount
)

// searchDoneMsg reports the outcome of a Submit or ChangePage call.
type searchDoneMsg struct {
	err error
}

type keyMap struct {
	Submit  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Tab     key.Binding
	SortBy  key.Binding
	SortDir key.Binding
	Discard key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Next: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+n"),
		key.WithHelp("pgdn", "next page"),
	),
	Prev: key.NewBinding(
		key.WithKeys("pgup", "ctrl+p"),
		key.WithHelp("pgup", "prev page"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
	SortBy: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "sort field"),
	),
	SortDir: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "sort direction"),
	),
	Discard: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear results"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Model is the Bubble Tea model for the browse command.
type Model struct {
	session *session.Session
	linker  *patentid.Linker
	timeout time.Duration

	inputs     []textinput.Model
	focusIndex int

	sortBy  types.SortField
	sortDir types.SortDirection

	spinner spinner.Model

	// inputErr is a local parse error for the year fields.
	inputErr string

	width    int
	quitting bool
}

// NewModel returns a model driving s. timeout bounds each fetch; zero means
// no bound beyond the HTTP client's own.
func NewModel(s *session.Session, linker *patentid.Linker, timeout time.Duration) Model {
	st := s.Snapshot()

	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldText] = textinput.New()
	inputs[fieldText].Placeholder = "title keywords, e.g. check valve"
	inputs[fieldText].CharLimit = 128
	inputs[fieldText].Width = 40
	inputs[fieldText].Prompt = "🔎 "
	inputs[fieldText].SetValue(st.Query.Text)
	inputs[fieldText].Focus()

	for _, f := range []int{fieldYearFrom, fieldYearTo} {
		inputs[f] = textinput.New()
		inputs[f].Placeholder = "any"
		inputs[f].CharLimit = 4
		inputs[f].Width = 6
		inputs[f].Prompt = ""
	}
	if st.Query.YearFrom != nil {
		inputs[fieldYearFrom].SetValue(strconv.Itoa(*st.Query.YearFrom))
	}
	if st.Query.YearTo != nil {
		inputs[fieldYearTo].SetValue(strconv.Itoa(*st.Query.YearTo))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = mutedStyle

	return Model{
		session: s,
		linker:  linker,
		timeout: timeout,
		inputs:  inputs,
		sortBy:  st.Query.SortBy,
		sortDir: st.Query.SortDir,
		spinner: sp,
	}
}

// Init starts the spinner and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		// Outcomes live in the session snapshot; superseded responses need
		// no action.
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Submit):
		return m.submit()

	case key.Matches(msg, keys.Next):
		return m, m.changePage(m.session.Snapshot().Pagination().Page + 1)

	case key.Matches(msg, keys.Prev):
		return m, m.changePage(m.session.Snapshot().Pagination().Page - 1)

	case key.Matches(msg, keys.Tab):
		step := 1
		if msg.String() == "shift+tab" {
			step = fieldCount - 1
		}
		m.focus((m.focusIndex + step) % fieldCount)
		return m, nil

	case key.Matches(msg, keys.SortBy):
		if m.sortBy == types.SortByDate {
			m.sortBy = types.SortByTitle
		} else {
			m.sortBy = types.SortByDate
		}
		return m.resubmit()

	case key.Matches(msg, keys.SortDir):
		if m.sortDir == types.SortDesc {
			m.sortDir = types.SortAsc
		} else {
			m.sortDir = types.SortDesc
		}
		return m.resubmit()

	case key.Matches(msg, keys.Discard):
		m.session.Discard()
		m.inputErr = ""
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) focus(i int) {
	m.focusIndex = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// query assembles the form into a Query. Year fields that are not integers
// are reported here; range checks belong to the query builder.
func (m Model) query() (types.Query, error) {
	q := types.Query{
		Text:    m.inputs[fieldText].Value(),
		SortBy:  m.sortBy,
		SortDir: m.sortDir,
	}
	var err error
	if q.YearFrom, err = parseYear("from", m.inputs[fieldYearFrom].Value()); err != nil {
		return q, err
	}
	if q.YearTo, err = parseYear("to", m.inputs[fieldYearTo].Value()); err != nil {
		return q, err
	}
	return q, nil
}

func parseYear(label, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("year %s: %q is not a year", label, s)
	}
	return &y, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q, err := m.query()
	if err != nil {
		m.inputErr = err.Error()
		return m, nil
	}
	m.inputErr = ""

	s, timeout := m.session, m.timeout
	return m, func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		return searchDoneMsg{err: s.Submit(ctx, q)}
	}
}

// resubmit reruns the search after a sort change, once a search has run.
func (m Model) resubmit() (tea.Model, tea.Cmd) {
	if m.session.Snapshot().Status == session.Idle {
		return m, nil
	}
	return m.submit()
}

func (m Model) changePage(n int) tea.Cmd {
	st := m.session.Snapshot()
	if st.Status != session.Ready && st.Status != session.Failed {
		return nil
	}
	s, timeout := m.session, m.timeout
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		return searchDoneMsg{err: s.ChangePage(ctx, n)}
	}
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}

// View renders the search form, status line, and current result page.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := present.Project(m.session.Snapshot(), m.linker)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Lapsed U.S. patents") + "\n\n")
	sb.WriteString(m.renderForm() + "\n")

	if m.inputErr != "" {
		sb.WriteString(errorStyle.Render(m.inputErr) + "\n")
	}
	if v.Validation != "" {
		sb.WriteString(errorStyle.Render(v.Validation) + "\n")
	}
	if v.Failure != "" {
		sb.WriteString(warningStyle.Render(v.Failure) + "\n")
	}
	if v.Loading {
		sb.WriteString(m.spinner.View() + " " + mutedStyle.Render(present.LoadingMessage) + "\n")
	}

	sb.WriteString("\n" + m.renderResults(v))
	sb.WriteString(helpStyle.Render(helpLine()))
	return sb.String()
}

func (m Model) renderForm() string {
	sort := fmt.Sprintf("sorted by %s (%s)", m.sortBy.Label(), m.sortDir)
	form := lipgloss.JoinVertical(lipgloss.Left,
		m.inputs[fieldText].View(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render("from "), m.inputs[fieldYearFrom].View(),
			labelStyle.Render("  to "), m.inputs[fieldYearTo].View(),
			mutedStyle.Render("   "+sort),
		),
	)
	return boxStyle.Render(form)
}

func (m Model) renderResults(v present.View) string {
	if !v.HasResults() {
		if v.Message != "" && !v.Loading {
			return mutedStyle.Render(v.Message) + "\n"
		}
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headlineStyle.Render(v.Headline) + "\n")
	if v.Empty {
		sb.WriteString(mutedStyle.Render(v.Message) + "\n")
		return sb.String()
	}
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("%s • %s", v.Summary, v.PageIndicator())) + "\n\n")

	titleWidth := 60
	if m.width > 40 {
		titleWidth = m.width - 30
	}
	for _, r := range v.Rows {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			patentStyle.Render(r.Label()),
			dateStyle.Render(r.GrantDate),
			lipgloss.NewStyle().MaxWidth(titleWidth).Render(r.Title),
		) + "\n")
		sb.WriteString(mutedStyle.Render("  "+r.URL) + "\n")
	}
	return sb.String()
}

func helpLine() string {
	bindings := []key.Binding{keys.Submit, keys.Tab, keys.Next, keys.Prev, keys.SortBy, keys.SortDir, keys.Discard, keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
