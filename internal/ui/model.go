package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"searchbox/internal/autocomplete"
	"searchbox/internal/config"
	"searchbox/internal/eventbus"
	"searchbox/internal/source"
	"searchbox/internal/ui/views"
)

// Box positions on screen.
const (
	staticBox = iota
	remoteBox
)

const title = "Autocomplete search box"

// Model is the demo screen: a search box over a fixed list and one over the
// product catalog.
type Model struct {
	ctx    context.Context
	bus    eventbus.EventBus
	config *config.Config

	static   *source.StaticSource
	remote   *source.RemoteSource
	debounce source.Debouncer

	boxes  []autocomplete.Model
	active int

	renderer *views.Renderer
	help     help.Model
	keys     keyMap
	helpText *HelpRenderer

	status      string
	statusLevel views.StatusLevel

	width       int
	height      int
	inPagerMode bool
	initCmd     tea.Cmd

	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates the demo model. Lookups run under ctx.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, remote *source.RemoteSource) *Model {
	m := &Model{
		ctx:      ctx,
		bus:      bus,
		config:   cfg,
		static:   source.NewStaticSource(cfg.Static.Suggestions),
		remote:   remote,
		renderer: views.NewRenderer(),
		help:     help.New(),
		helpText: NewHelpRenderer(remote.Threshold()),
	}

	m.boxes = []autocomplete.Model{
		autocomplete.New(
			autocomplete.WithPlaceholder(cfg.Search.Placeholder),
			autocomplete.WithWidth(cfg.Search.Width),
		),
		autocomplete.New(
			autocomplete.WithPlaceholder(fmt.Sprintf("Search products (%d+ characters)", remote.Threshold())),
			autocomplete.WithWidth(cfg.Search.Width),
			autocomplete.WithDebounce(cfg.Search.Debounce),
		),
	}
	m.debounce = source.NewDebouncer(m.boxes[remoteBox].ID(), m.boxes[remoteBox].Debounce())
	m.keys = newKeyMap(m.boxes[staticBox].KeyMap())
	m.initCmd = m.boxes[staticBox].Focus()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init focuses the first box
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.placeBoxes()
		return m, m.updateBoxes(msg)

	case autocomplete.ChangeMsg:
		return m, m.handleChange(msg)

	case autocomplete.SuggestionClickedMsg:
		return m, m.handleChosen(msg)

	case autocomplete.FocusMsg:
		// a click may focus the other box; keep a single focused box
		if i := m.boxIndex(msg.ID); i >= 0 && i != m.active {
			m.boxes[m.active].Blur()
			m.active = i
		}
		return m, nil

	case autocomplete.DismissMsg:
		return m, nil

	case source.DebouncedMsg:
		return m, m.handleDebounced(msg)

	case lookupResultMsg:
		return m, m.handleLookupResult(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Warn("help pager failed", "err", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// suggestions, progress and spinner ticks route themselves by ID
	return m, m.updateBoxes(msg)
}

// View renders the demo
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	out, _ := m.renderer.Render(m.screen())
	return out
}

func (m *Model) Box(i int) autocomplete.Model {
	return m.boxes[i]
}

func (m *Model) Active() int {
	return m.active
}

func (m *Model) Status() string {
	return m.status
}

func (m *Model) screen() views.Screen {
	return views.Screen{
		Title: title,
		Sections: []views.Section{
			{Label: "With string suggestions", Active: m.active == staticBox, Body: m.boxes[staticBox].View()},
			{Label: "With custom layout suggestions", Active: m.active == remoteBox, Body: m.boxes[remoteBox].View()},
		},
		Status:      m.status,
		StatusLevel: m.statusLevel,
		Help:        m.help.View(m.keys),
	}
}

// placeBoxes tells every box where it is drawn so it can map clicks.
func (m *Model) placeBoxes() {
	_, origins := m.renderer.Render(m.screen())
	for i := range m.boxes {
		m.boxes[i].SetOrigin(origins[i].X, origins[i].Y)
	}
}

func (m *Model) updateBoxes(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.boxes))
	for i := range m.boxes {
		var cmd tea.Cmd
		m.boxes[i], cmd = m.boxes[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) boxIndex(id int) int {
	for i, b := range m.boxes {
		if b.ID() == id {
			return i
		}
	}
	return -1
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	listFocused := m.boxes[m.active].ListFocused()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m, m.fetchHelpPager(m.helpText.RenderHelpContent())
	case key.Matches(msg, m.keys.NextBox) && !listFocused:
		return m, m.focusBox((m.active + 1) % len(m.boxes))
	case key.Matches(msg, m.keys.PrevBox) && !listFocused:
		return m, m.focusBox((m.active + len(m.boxes) - 1) % len(m.boxes))
	}

	var cmd tea.Cmd
	m.boxes[m.active], cmd = m.boxes[m.active].Update(msg)
	return m, cmd
}

func (m *Model) focusBox(i int) tea.Cmd {
	if i == m.active {
		return nil
	}
	m.boxes[m.active].Blur()
	m.active = i
	return m.boxes[i].Focus()
}

func (m *Model) handleChange(msg autocomplete.ChangeMsg) tea.Cmd {
	m.publish(eventbus.QueryChangedEvent{BoxID: msg.ID, Query: msg.Value, Generation: msg.Generation})

	switch m.boxIndex(msg.ID) {
	case staticBox:
		return autocomplete.Suggest(msg.ID, msg.Generation, m.static.Suggestions(msg.Value))
	case remoteBox:
		if !m.remote.Eligible(msg.Value) {
			m.debounce.Cancel()
			return tea.Batch(
				autocomplete.Suggest(msg.ID, msg.Generation, nil),
				autocomplete.Progress(msg.ID, false),
			)
		}
		return m.debounce.Schedule(msg.Generation, msg.Value)
	}
	return nil
}

func (m *Model) handleDebounced(msg source.DebouncedMsg) tea.Cmd {
	if !m.debounce.Ready(msg) {
		return nil
	}
	m.publish(eventbus.LookupStartedEvent{BoxID: msg.ID, Query: msg.Query})
	return tea.Batch(autocomplete.Progress(msg.ID, true), m.lookup(msg))
}

func (m *Model) lookup(msg source.DebouncedMsg) tea.Cmd {
	ctx, remote := m.ctx, m.remote
	return func() tea.Msg {
		products, err := remote.Lookup(ctx, msg.Query)
		return lookupResultMsg{
			boxID:      msg.ID,
			generation: msg.Generation,
			query:      msg.Query,
			products:   products,
			err:        err,
		}
	}
}

func (m *Model) handleLookupResult(msg lookupResultMsg) tea.Cmd {
	if !m.debounce.Ready(source.DebouncedMsg{ID: msg.boxID, Generation: msg.generation}) {
		log.Debug("dropping stale lookup", "query", msg.query, "generation", msg.generation)
		if m.debounce.Pending() {
			// a newer lookup owns the progress indicator
			return nil
		}
		return autocomplete.Progress(msg.boxID, false)
	}

	if msg.err != nil {
		log.Warn("lookup failed", "query", msg.query, "err", msg.err)
		m.publish(eventbus.LookupFailedEvent{BoxID: msg.boxID, Query: msg.query, Err: msg.err})
		return autocomplete.Progress(msg.boxID, false)
	}

	m.publish(eventbus.LookupCompletedEvent{BoxID: msg.boxID, Query: msg.query, Results: len(msg.products)})
	width := m.boxes[remoteBox].ContentWidth()
	return tea.Batch(
		autocomplete.Suggest(msg.boxID, msg.generation, source.ProductSuggestions(msg.products, msg.query, width)),
		autocomplete.Progress(msg.boxID, false),
	)
}

func (m *Model) handleChosen(msg autocomplete.SuggestionClickedMsg) tea.Cmd {
	value := msg.Suggestion.SearchText()
	log.Info("suggestion chosen", "box", msg.ID, "kind", msg.Suggestion.Kind(), "value", value)
	m.publish(eventbus.SuggestionChosenEvent{BoxID: msg.ID, Value: value})
	m.setStatus("Selected: "+value, views.StatusSuccess)

	if m.boxIndex(msg.ID) != remoteBox {
		return nil
	}
	// abandon the lookup in flight; its result will be dropped
	m.debounce.Cancel()
	return autocomplete.Progress(msg.ID, false)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.LookupFailedEvent:
		reason := e.Err
		if errors.Is(reason, context.DeadlineExceeded) {
			reason = errors.New("timed out")
		}
		m.setStatus(fmt.Sprintf("Lookup for %q failed: %v", e.Query, reason), views.StatusError)
	case eventbus.CatalogStartedEvent:
		m.setStatus("Serving the product catalog at http://"+e.Addr, views.StatusInfo)
	}
}

func (m *Model) setStatus(msg string, level views.StatusLevel) {
	m.status = msg
	m.statusLevel = level
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	program, ops := m.program, m.helpOps
	return func() tea.Msg {
		if program == nil || ops == nil {
			return helpPagerMsg{err: errors.New("program not set")}
		}

		program.Send(pauseRenderingMsg{})
		err := ops.ShowHelpInPager(helpContent)
		program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}
