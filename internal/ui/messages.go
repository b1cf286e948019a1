package ui

import (
	"searchbox/internal/domain"
	"searchbox/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// lookupResultMsg carries the answer of a remote lookup
type lookupResultMsg struct {
	boxID      int
	generation uint64
	query      string
	products   []domain.Product
	err        error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
