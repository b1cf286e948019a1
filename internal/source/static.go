// Package source provides the suggestion sources used by the demo: an
// in-memory list searched by substring and a remote OData product catalog.
package source

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"

	"searchbox/internal/autocomplete"
)

// StaticSource filters a fixed list of strings by case-insensitive substring.
type StaticSource struct {
	entries []string
	// every lowercase suffix of every entry, mapped to the entry indices it came from
	suffixes *patricia.Trie
}

func NewStaticSource(entries []string) *StaticSource {
	s := &StaticSource{
		entries:  append([]string(nil), entries...),
		suffixes: patricia.NewTrie(),
	}
	for i, entry := range s.entries {
		lower := strings.ToLower(entry)
		for j := 0; j < len(lower); {
			s.index(lower[j:], i)
			_, size := utf8.DecodeRuneInString(lower[j:])
			j += size
		}
	}
	return s
}

func (s *StaticSource) index(suffix string, entry int) {
	key := patricia.Prefix(suffix)
	if existing, ok := s.suffixes.Get(key).([]int); ok {
		if existing[len(existing)-1] != entry {
			s.suffixes.Set(key, append(existing, entry))
		}
		return
	}
	s.suffixes.Insert(key, []int{entry})
}

func (s *StaticSource) Len() int {
	return len(s.entries)
}

// Filter returns nil for blank text, otherwise every entry containing text
// case-insensitively, in list order. No match yields an empty, non-nil slice.
func (s *StaticSource) Filter(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[int]struct{})
	_ = s.suffixes.VisitSubtree(patricia.Prefix(strings.ToLower(text)), func(_ patricia.Prefix, item patricia.Item) error {
		for _, i := range item.([]int) {
			seen[i] = struct{}{}
		}
		return nil
	})

	hits := make([]int, 0, len(seen))
	for i := range seen {
		hits = append(hits, i)
	}
	sort.Ints(hits)

	out := make([]string, len(hits))
	for k, i := range hits {
		out[k] = s.entries[i]
	}
	return out
}

// Suggestions is Filter wrapped as text suggestions.
func (s *StaticSource) Suggestions(text string) []autocomplete.Suggestion {
	return autocomplete.Texts(s.Filter(text)...)
}
