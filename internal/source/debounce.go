package source

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebouncedMsg is delivered once a query has been stable for the debounce interval.
type DebouncedMsg struct {
	ID         int
	Query      string
	Generation uint64
}

// Debouncer delays lookups for one search box. Every Schedule supersedes the
// previous one; Ready tells whether a delivered message is still the latest.
type Debouncer struct {
	id     int
	delay  time.Duration
	latest uint64
}

func NewDebouncer(id int, delay time.Duration) Debouncer {
	return Debouncer{id: id, delay: delay}
}

// Schedule records generation as the latest and returns a command that
// delivers a DebouncedMsg after the delay.
func (d *Debouncer) Schedule(generation uint64, query string) tea.Cmd {
	d.latest = generation
	msg := DebouncedMsg{ID: d.id, Query: query, Generation: generation}
	if d.delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return msg
	})
}

// Cancel makes every pending message stale.
func (d *Debouncer) Cancel() {
	d.latest = 0
}

// Ready reports whether msg belongs to this box and no newer query was scheduled.
func (d Debouncer) Ready(msg DebouncedMsg) bool {
	return msg.ID == d.id && d.latest != 0 && msg.Generation == d.latest
}

// Pending reports whether a scheduled query may still produce a lookup.
func (d Debouncer) Pending() bool {
	return d.latest != 0
}

func (d Debouncer) Delay() time.Duration {
	return d.delay
}
