// Package autocomplete provides a search box with a suggestion overlay for
// Bubble Tea programs.
//
// The box owns the query text, overlay visibility, the loading indicator and
// the keyboard focus split between the input and the suggestion list. It
// never produces suggestions itself: it emits a ChangeMsg for every edit and
// the caller answers with SuggestionsMsg and ProgressMsg updates, in any
// order and after any delay.
package autocomplete

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth = 40
	minWidth     = 8
	loadingLabel = "Searching…"
	gutterWidth  = 2
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Option configures a Model in New.
type Option func(*Model)

// WithID overrides the generated ID used to route messages.
func WithID(id int) Option {
	return func(m *Model) {
		m.id = id
	}
}

func WithPlaceholder(placeholder string) Option {
	return func(m *Model) {
		m.input.Placeholder = placeholder
	}
}

func WithPrompt(prompt string) Option {
	return func(m *Model) {
		m.input.Prompt = prompt
	}
}

// WithWidth sets the visible width of the input and the overlay rows.
func WithWidth(width int) Option {
	return func(m *Model) {
		if width < minWidth {
			width = minWidth
		}
		m.width = width
		m.input.Width = width
	}
}

func WithCharLimit(limit int) Option {
	return func(m *Model) {
		m.input.CharLimit = limit
	}
}

// WithDebounce records the debounce interval the caller applies to change
// events. The box itself never delays anything.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		m.debounce = d
	}
}

func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
		m.input.PromptStyle = styles.Prompt
		m.spinner.Style = styles.Spinner
	}
}

// WithSuggestions sets the initial suggestions.
func WithSuggestions(suggestions []Suggestion) Option {
	return func(m *Model) {
		m.state, _ = reconcile(m.state, SuggestionsMsg{Suggestions: suggestions})
	}
}

// WithInProgress sets the initial loading state. Init starts the spinner.
func WithInProgress(inProgress bool) Option {
	return func(m *Model) {
		m.state, _ = reconcile(m.state, ProgressMsg{InProgress: inProgress})
	}
}

// Model is a search box with a suggestion overlay.
type Model struct {
	id       int
	input    textinput.Model
	spinner  spinner.Model
	state    State
	keys     KeyMap
	styles   Styles
	debounce time.Duration
	width    int
	focused  bool

	// top-left cell of the box on screen, for mouse hit testing
	originX int
	originY int
}

// New creates a search box. It starts blurred; call Focus to receive keys.
func New(opts ...Option) Model {
	m := Model{
		id:      nextID(),
		input:   textinput.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:    DefaultKeyMap(),
	}
	m.input.Prompt = "> "
	m.input.Placeholder = "Search"
	WithWidth(defaultWidth)(&m)
	WithStyles(DefaultStyles())(&m)

	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner when the box is created in progress.
func (m Model) Init() tea.Cmd {
	if m.state.Loading {
		return m.spinner.Tick
	}
	return nil
}

// Update handles caller updates, keys, mouse clicks and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SuggestionsMsg:
		if !m.owns(msg.ID) {
			return m, nil
		}
		return m.reconcile(msg)

	case ProgressMsg:
		if !m.owns(msg.ID) {
			return m, nil
		}
		wasLoading := m.state.Loading
		var cmd tea.Cmd
		m, cmd = m.reconcile(msg)
		if m.state.Loading && !wasLoading {
			cmd = tea.Batch(cmd, m.spinner.Tick)
		}
		return m, cmd

	case spinner.TickMsg:
		// Ticks stop once loading ends; a new ProgressMsg restarts them.
		if !m.state.Loading || msg.ID != m.spinner.ID() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.state.Focus == FocusList {
			return m.handleListKey(msg)
		}
		return m.handleInputKey(msg)
	}

	return m.updateInput(msg, tea.KeyMsg{})
}

// View renders the input and, when visible, the overlay below it.
func (m Model) View() string {
	in := m.input.View()
	if !OverlayVisible(m.state) {
		return in
	}
	return lipgloss.JoinVertical(lipgloss.Left, in, m.overlayView())
}

// Focus gives the box keyboard focus and reopens the overlay when earlier
// suggestions are still around. It never asks for new suggestions.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.state.Open = len(m.state.Suggestions) > 0
	m.state.Focus = FocusInput
	m.state.Cursor = 0
	return tea.Batch(m.input.Focus(), emit(FocusMsg{ID: m.id}))
}

// Blur removes keyboard focus and closes the overlay.
func (m *Model) Blur() {
	m.focused = false
	m.state = dismiss(m.state)
	m.input.Blur()
}

// SetSuggestions applies a suggestions update directly.
func (m *Model) SetSuggestions(suggestions []Suggestion) tea.Cmd {
	var cmd tea.Cmd
	*m, cmd = m.reconcile(SuggestionsMsg{ID: m.id, Suggestions: suggestions})
	return cmd
}

// SetInProgress applies a progress update directly.
func (m *Model) SetInProgress(inProgress bool) tea.Cmd {
	var cmd tea.Cmd
	*m, cmd = m.Update(ProgressMsg{ID: m.id, InProgress: inProgress})
	return cmd
}

// SetValue replaces the query without emitting a ChangeMsg.
func (m *Model) SetValue(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.state.Query = m.input.Value()
}

// SetOrigin records where the box is drawn so mouse clicks can be mapped to rows.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

func (m Model) ID() int {
	return m.id
}

func (m Model) Value() string {
	return m.state.Query
}

func (m Model) State() State {
	return m.state
}

func (m Model) Visible() bool {
	return OverlayVisible(m.state)
}

func (m Model) Focused() bool {
	return m.focused
}

// ListFocused reports whether keys currently go to the suggestion list.
func (m Model) ListFocused() bool {
	return m.focused && m.state.Focus == FocusList
}

func (m Model) Cursor() int {
	return m.state.Cursor
}

func (m Model) Suggestions() []Suggestion {
	return m.state.Suggestions
}

func (m Model) Loading() bool {
	return m.state.Loading
}

func (m Model) Generation() uint64 {
	return m.state.Generation
}

func (m Model) Debounce() time.Duration {
	return m.debounce
}

// ContentWidth is the width available to a row's content, excluding the gutter.
func (m Model) ContentWidth() int {
	return m.width - gutterWidth
}

func (m Model) KeyMap() KeyMap {
	return m.keys
}

// TextInput exposes the underlying input for configuration the options do not cover.
func (m *Model) TextInput() *textinput.Model {
	return &m.input
}

// RowAt returns the index of the suggestion row drawn at screen cell (x, y),
// or -1 when there is none.
func (m Model) RowAt(x, y int) int {
	if !OverlayVisible(m.state) {
		return -1
	}
	if x < m.originX || x >= m.originX+lipgloss.Width(m.overlayView()) {
		return -1
	}
	line := y - m.originY - lipgloss.Height(m.input.View()) -
		m.styles.Overlay.GetBorderTopSize() - m.styles.Overlay.GetPaddingTop()
	if m.state.Loading {
		line--
	}
	if line < 0 {
		return -1
	}
	for i, row := range m.rows() {
		h := lipgloss.Height(row)
		if line < h {
			return i
		}
		line -= h
	}
	return -1
}

func (m Model) owns(id int) bool {
	return id == 0 || id == m.id
}

func (m Model) reconcile(msg any) (Model, tea.Cmd) {
	next, ok := reconcile(m.state, msg)
	if !ok {
		return m, nil
	}
	m.state = next
	return m, m.syncFocus()
}

// syncFocus makes the text input's focus follow the state's focus target.
func (m *Model) syncFocus() tea.Cmd {
	if !m.focused {
		return nil
	}
	switch {
	case m.state.Focus == FocusInput && !m.input.Focused():
		return m.input.Focus()
	case m.state.Focus == FocusList && m.input.Focused():
		m.input.Blur()
	}
	return nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		// Always consumed so the input never sees it.
		if OverlayVisible(m.state) && len(m.state.Suggestions) > 0 {
			m.state.Focus = FocusList
			m.state.Cursor = 0
			return m, m.syncFocus()
		}
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		if m.state.Open && OverlayVisible(m.state) {
			return m.dismiss()
		}
		return m, nil
	}
	return m.updateInput(msg, msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := len(m.state.Suggestions)
	switch {
	case key.Matches(msg, m.keys.Down, m.keys.Next):
		if m.state.Cursor < rows-1 {
			m.state.Cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Up, m.keys.Prev):
		if m.state.Cursor == 0 {
			m.state.Focus = FocusInput
			return m, m.syncFocus()
		}
		m.state.Cursor--
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		return m.activate(m.state.Cursor)
	case key.Matches(msg, m.keys.Dismiss):
		return m.dismiss()
	case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace, msg.Type == tea.KeyBackspace:
		// Typing from the list goes back to the input.
		m.state.Focus = FocusInput
		focusCmd := m.syncFocus()
		var cmd tea.Cmd
		m, cmd = m.updateInput(msg, msg)
		return m, tea.Batch(focusCmd, cmd)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if row := m.RowAt(msg.X, msg.Y); row >= 0 {
		return m.activate(row)
	}
	if m.inInput(msg.X, msg.Y) {
		if m.focused {
			return m, nil
		}
		cmd := m.Focus()
		return m, cmd
	}
	if m.state.Open && OverlayVisible(m.state) && !m.contains(msg.X, msg.Y) {
		return m.dismiss()
	}
	return m, nil
}

// updateInput forwards msg to the text input and emits a ChangeMsg when the value changed.
func (m Model) updateInput(msg tea.Msg, k tea.KeyMsg) (Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()
	if after == before {
		return m, cmd
	}
	m.state = edit(m.state, after)
	return m, tea.Batch(cmd, emit(ChangeMsg{
		ID:         m.id,
		Key:        k,
		Value:      after,
		Generation: m.state.Generation,
	}))
}

func (m Model) activate(i int) (Model, tea.Cmd) {
	if i < 0 || i >= len(m.state.Suggestions) {
		return m, nil
	}
	chosen := m.state.Suggestions[i]
	m.state = activate(m.state, i)
	m.input.SetValue(m.state.Query)
	m.input.CursorEnd()
	return m, tea.Batch(m.syncFocus(), emit(SuggestionClickedMsg{ID: m.id, Suggestion: chosen}))
}

func (m Model) dismiss() (Model, tea.Cmd) {
	m.state = dismiss(m.state)
	return m, tea.Batch(m.syncFocus(), emit(DismissMsg{ID: m.id}))
}

func (m Model) overlayView() string {
	lines := make([]string, 0, len(m.state.Suggestions)+1)
	if m.state.Loading {
		indicator := m.spinner.View() + " " + m.styles.Loading.Render(loadingLabel)
		lines = append(lines, lipgloss.NewStyle().Width(m.width).Render(indicator))
	}
	lines = append(lines, m.rows()...)
	return m.styles.Overlay.Render(strings.Join(lines, "\n"))
}

// rows renders one block per suggestion, keyed by position.
func (m Model) rows() []string {
	out := make([]string, len(m.state.Suggestions))
	for i, s := range m.state.Suggestions {
		gutter := strings.Repeat(" ", gutterWidth)
		style := m.styles.Row
		if m.state.Focus == FocusList && i == m.state.Cursor {
			gutter = m.styles.Gutter.Render("▸ ")
			style = m.styles.FocusedRow
		}
		body := style.Width(m.width - gutterWidth).Render(s.content())
		out[i] = lipgloss.JoinHorizontal(lipgloss.Top, gutter, body)
	}
	return out
}

func (m Model) inInput(x, y int) bool {
	v := m.input.View()
	return x >= m.originX && x < m.originX+lipgloss.Width(v) &&
		y >= m.originY && y < m.originY+lipgloss.Height(v)
}

func (m Model) contains(x, y int) bool {
	v := m.View()
	return x >= m.originX && x < m.originX+lipgloss.Width(v) &&
		y >= m.originY && y < m.originY+lipgloss.Height(v)
}
