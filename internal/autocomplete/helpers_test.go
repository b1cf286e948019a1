package autocomplete

import (
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// product is a custom suggestion used across the tests.
type product struct {
	name  string
	price string
	lines int
}

func (p *product) Render() string {
	if p.lines > 1 {
		return p.name + "\n" + p.price
	}
	return p.name + " " + p.price
}

func (p *product) SearchText() string {
	return p.name
}

// newFocusedBox returns a focused box with a static cursor so that commands
// never wait on blink timers.
func newFocusedBox(t *testing.T, opts ...Option) Model {
	t.Helper()
	m := New(opts...)
	m.TextInput().Cursor.SetMode(cursor.CursorStatic)
	m.Focus()
	return m
}

// collect runs cmd and every command batched inside it, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func msgsOf[T any](msgs []tea.Msg) []T {
	var out []T
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func runesKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// send feeds msg to the box and returns the messages its command produced.
func send(m Model, msg tea.Msg) (Model, []tea.Msg) {
	m, cmd := m.Update(msg)
	return m, collect(cmd)
}

// typeText sends one key press per rune of s.
func typeText(m Model, s string) (Model, []tea.Msg) {
	var all []tea.Msg
	for _, r := range s {
		var msgs []tea.Msg
		m, msgs = send(m, runesKey(string(r)))
		all = append(all, msgs...)
	}
	return m, all
}

// suggest delivers an unversioned suggestions update to m.
func suggest(m Model, values ...Suggestion) Model {
	m, _ = send(m, SuggestionsMsg{ID: m.ID(), Suggestions: values})
	return m
}

// rowsOnScreen scans the rendered box line by line and returns the row index hit on each line.
func rowsOnScreen(m Model) []int {
	var rows []int
	last := -1
	for y := 0; y < 200; y++ {
		row := m.RowAt(4, y)
		if row >= 0 && row != last {
			rows = append(rows, row)
		}
		last = row
	}
	return rows
}
