package autocomplete

// Item is a suggestion that renders its own row content.
type Item interface {
	// Render returns the display fragment shown inside the suggestion row.
	Render() string
	// SearchText returns the plain text written into the input on activation.
	SearchText() string
}

// Kind discriminates the two suggestion variants.
type Kind int

const (
	KindText Kind = iota
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Suggestion is either a plain string or an Item. Use Text or Custom to build one.
type Suggestion struct {
	kind Kind
	text string
	item Item
}

// Text returns a plain string suggestion.
func Text(s string) Suggestion {
	return Suggestion{kind: KindText, text: s}
}

// Custom returns a suggestion whose row is rendered by it.
func Custom(it Item) Suggestion {
	return Suggestion{kind: KindItem, item: it}
}

// Texts wraps every value with Text.
func Texts(values ...string) []Suggestion {
	if values == nil {
		return nil
	}
	out := make([]Suggestion, len(values))
	for i, v := range values {
		out[i] = Text(v)
	}
	return out
}

// Items wraps every value with Custom.
func Items[T Item](items []T) []Suggestion {
	if items == nil {
		return nil
	}
	out := make([]Suggestion, len(items))
	for i, it := range items {
		out[i] = Custom(it)
	}
	return out
}

func (s Suggestion) Kind() Kind {
	return s.kind
}

// SearchText returns the plain-text form: the string itself, or the item's search text.
func (s Suggestion) SearchText() string {
	if s.kind == KindItem {
		return s.item.SearchText()
	}
	return s.text
}

// TextValue returns the string of a text suggestion.
func (s Suggestion) TextValue() (string, bool) {
	return s.text, s.kind == KindText
}

// Item returns the item of a custom suggestion.
func (s Suggestion) Item() (Item, bool) {
	return s.item, s.kind == KindItem
}

func (s Suggestion) content() string {
	if s.kind == KindItem {
		return s.item.Render()
	}
	return s.text
}
