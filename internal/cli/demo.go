package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"searchbox/internal/catalog"
	"searchbox/internal/config"
	"searchbox/internal/eventbus"
	"searchbox/internal/logging"
	"searchbox/internal/source"
	"searchbox/internal/ui"
)

// uiEvents are forwarded from the bus into the running program.
var uiEvents = []eventbus.EventType{
	eventbus.EventLookupFailed,
	eventbus.EventCatalogStarted,
}

func runDemo(cmd *cobra.Command, opts *options, localCatalog bool) error {
	bus := eventbus.New()
	defer bus.Close()

	cfg, _, err := opts.load(bus)
	if err != nil {
		return err
	}

	logFile, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not open log file, logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
	}

	logEvents(bus)

	ctx, cancel := withSignals(cmd.Context())
	defer cancel()

	baseURL := cfg.Remote.BaseURL
	var srv *catalog.Server
	if localCatalog {
		srv = catalog.NewServer(cfg.Catalog.Addr, catalog.Seeded(), bus)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		baseURL = srv.URL()
	}

	remote := newRemote(cfg, baseURL)
	m := ui.NewModel(ctx, bus, cfg, remote)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	m.SetProgram(p)

	for _, t := range uiEvents {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}
	if srv != nil {
		// the start event was published before the program could receive it
		go p.Send(ui.EventMsg{Event: eventbus.CatalogStartedEvent{Addr: srv.Addr()}})
	}

	if os.Getenv("SEARCHBOX_E2E_TEST") == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	log.Info("starting demo", "remote", baseURL, "threshold", remote.Threshold(), "debounce", cfg.Search.Debounce)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("demo exited")

	cancel()
	if srv != nil {
		if err := srv.Wait(); err != nil {
			log.Warn("catalog stopped with error", "err", err)
		}
	}
	return nil
}

func newRemote(cfg *config.Config, baseURL string) *source.RemoteSource {
	return source.NewRemoteSource(baseURL,
		source.WithThreshold(cfg.Search.QueryThreshold),
		source.WithTimeout(cfg.Remote.Timeout),
	)
}

// logEvents records every domain event in the log file.
func logEvents(bus eventbus.EventBus) {
	for _, t := range []eventbus.EventType{
		eventbus.EventLookupStarted,
		eventbus.EventLookupCompleted,
		eventbus.EventLookupFailed,
		eventbus.EventSuggestionChosen,
		eventbus.EventConfigSaved,
		eventbus.EventCatalogStarted,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			log.Debug("event", "type", e.Type(), "event", fmt.Sprintf("%+v", e))
		})
	}
}

// withSignals returns a context cancelled on interrupt.
func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
