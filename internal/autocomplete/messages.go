package autocomplete

import tea "github.com/charmbracelet/bubbletea"

// SuggestionsMsg replaces the suggestions of the box with the matching ID.
// A nil slice means no suggestions are defined. Generation should echo the
// ChangeMsg the suggestions answer; zero applies the update unconditionally.
type SuggestionsMsg struct {
	ID          int
	Suggestions []Suggestion
	Generation  uint64
}

// ProgressMsg toggles the loading indicator of the box with the matching ID.
type ProgressMsg struct {
	ID         int
	InProgress bool
}

// ChangeMsg is emitted once for every edit of the input value.
type ChangeMsg struct {
	ID         int
	Key        tea.KeyMsg // zero for edits that were not key presses, e.g. paste
	Value      string
	Generation uint64
}

// SuggestionClickedMsg is emitted when a row is activated. Suggestion is the
// value the caller supplied, unchanged.
type SuggestionClickedMsg struct {
	ID         int
	Suggestion Suggestion
}

// FocusMsg is emitted after the box takes focus.
type FocusMsg struct {
	ID int
}

// DismissMsg is emitted when the overlay is closed without a selection.
type DismissMsg struct {
	ID int
}

// Suggest returns a command delivering suggestions to the box with the given ID.
func Suggest(id int, generation uint64, suggestions []Suggestion) tea.Cmd {
	return emit(SuggestionsMsg{ID: id, Suggestions: suggestions, Generation: generation})
}

// Progress returns a command toggling the loading indicator of the box with the given ID.
func Progress(id int, inProgress bool) tea.Cmd {
	return emit(ProgressMsg{ID: id, InProgress: inProgress})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
