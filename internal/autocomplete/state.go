package autocomplete

// FocusTarget says which part of the box receives keys.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusList
)

// State is the interaction state owned by a search box.
type State struct {
	Query       string
	Suggestions []Suggestion // nil when the caller has not supplied any
	Loading     bool
	Open        bool
	Focus       FocusTarget
	Cursor      int

	// Generation increases on every query edit and on activation.
	Generation uint64
}

// OverlayVisible reports whether the suggestion overlay is part of the view.
func OverlayVisible(s State) bool {
	return s.Loading || (s.Open && len(s.Suggestions) > 0)
}

// reconcile applies one caller update. External values always win over local state.
// Suggestions tagged with a generation older than the current one are dropped.
func reconcile(s State, msg any) (State, bool) {
	switch msg := msg.(type) {
	case SuggestionsMsg:
		if msg.Generation != 0 && msg.Generation < s.Generation {
			return s, false
		}
		s.Suggestions = msg.Suggestions
		s.Open = msg.Suggestions != nil
		s = clampCursor(s)
		return s, true
	case ProgressMsg:
		s.Loading = msg.InProgress
		s = clampCursor(s)
		return s, true
	}
	return s, false
}

func clampCursor(s State) State {
	rows := len(s.Suggestions)
	if !OverlayVisible(s) || rows == 0 {
		s.Focus = FocusInput
		s.Cursor = 0
		return s
	}
	if s.Cursor >= rows {
		s.Cursor = rows - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	return s
}

// edit records a new raw query typed by the user.
func edit(s State, query string) State {
	s.Query = query
	s.Generation++
	return s
}

// activate selects row i: the query becomes its plain text and the overlay closes.
func activate(s State, i int) State {
	s.Query = s.Suggestions[i].SearchText()
	s.Open = false
	s.Focus = FocusInput
	s.Cursor = 0
	s.Generation++
	return s
}

func dismiss(s State) State {
	s.Open = false
	s.Focus = FocusInput
	s.Cursor = 0
	return s
}
