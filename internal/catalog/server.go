package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"searchbox/internal/eventbus"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the catalog routes and middleware.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HandleHealth)
	r.Get("/Products", h.HandleProducts)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info("catalog request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Server runs the catalog on a TCP address.
type Server struct {
	addr     string
	handler  http.Handler
	bus      eventbus.EventBus
	listener net.Listener
	done     chan struct{}
	err      error
}

// NewServer creates a server for c on addr. bus may be nil.
func NewServer(addr string, c *Catalog, bus eventbus.EventBus) *Server {
	return &Server{
		addr:    addr,
		handler: NewRouter(NewHandler(c)),
		bus:     bus,
		done:    make(chan struct{}),
	}
}

// Start listens and serves in the background until ctx is cancelled. It
// returns once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("catalog listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("catalog: shutdown", "err", err)
		}
	}()

	go func() {
		defer close(s.done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.err = err
			log.Error("catalog: serve", "err", err)
		}
	}()

	log.Info("catalog listening", "addr", s.Addr())
	if s.bus != nil {
		s.bus.Publish(eventbus.CatalogStartedEvent{Addr: s.Addr()})
	}
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// URL returns the base URL clients pass to the remote source.
func (s *Server) URL() string {
	return "http://" + s.Addr()
}

// Wait blocks until the server stopped and returns its serve error.
func (s *Server) Wait() error {
	<-s.done
	return s.err
}
