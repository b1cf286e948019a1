package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryChanged     EventType = "QueryChanged"
	EventLookupStarted    EventType = "LookupStarted"
	EventLookupCompleted  EventType = "LookupCompleted"
	EventLookupFailed     EventType = "LookupFailed"
	EventSuggestionChosen EventType = "SuggestionChosen"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventCatalogStarted   EventType = "CatalogStarted"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryChangedEvent is emitted for every edit of a search box
type QueryChangedEvent struct {
	BoxID      int
	Query      string
	Generation uint64
}

func (e QueryChangedEvent) Type() EventType { return EventQueryChanged }

// LookupStartedEvent is emitted when a remote lookup is sent
type LookupStartedEvent struct {
	BoxID int
	Query string
}

func (e LookupStartedEvent) Type() EventType { return EventLookupStarted }

// LookupCompletedEvent is emitted when a remote lookup returned results
type LookupCompletedEvent struct {
	BoxID   int
	Query   string
	Results int
}

func (e LookupCompletedEvent) Type() EventType { return EventLookupCompleted }

// LookupFailedEvent is emitted when a remote lookup returned an error
type LookupFailedEvent struct {
	BoxID int
	Query string
	Err   error
}

func (e LookupFailedEvent) Type() EventType { return EventLookupFailed }

// SuggestionChosenEvent is emitted when a suggestion row is activated
type SuggestionChosenEvent struct {
	BoxID int
	Value string
}

func (e SuggestionChosenEvent) Type() EventType { return EventSuggestionChosen }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string // empty when defaults were used
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// CatalogStartedEvent is emitted once the catalog server listens
type CatalogStartedEvent struct {
	Addr string
}

func (e CatalogStartedEvent) Type() EventType { return EventCatalogStarted }
