package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/db"
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
	"github.com/ziadkadry99/ui-showcase/internal/session"
	"github.com/ziadkadry99/ui-showcase/internal/site"
	"github.com/ziadkadry99/ui-showcase/internal/theme"
)

// DefaultIdleTimeout is how long a session without a live connection is kept.
const DefaultIdleTimeout = 30 * time.Minute

// Config holds server configuration.
type Config struct {
	Port             int
	AllowAll         bool   // allow all CORS origins (dev mode)
	ShellTitle       string // title of the shell page
	ShellMarker      string // masked-404 marker; empty disables the check
	ContentDir       string // directory served under /components/
	PreferencesDir   string // per-client preference files, used without a database
	Panels           []panel.Definition
	AutoplayInterval time.Duration
	IdleTimeout      time.Duration
}

// Server hosts the shell page, the demos and the viewer sessions.
type Server struct {
	cfg       Config
	db        *db.DB
	catalogs  *catalog.Holder
	recorder  session.Recorder
	logger    zerolog.Logger
	shell     *site.Shell
	loader    *loader.Loader
	extractor *panel.Extractor
	sessions  *registry

	router     chi.Router
	httpServer *http.Server

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a server. database may be nil, in which case theme preferences
// are kept in PreferencesDir, or only for the session when that is empty.
// recorder may be nil.
func New(cfg Config, database *db.DB, catalogs *catalog.Holder, recorder session.Recorder, logger zerolog.Logger) (*Server, error) {
	shell, err := site.NewShell()
	if err != nil {
		return nil, err
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	s := &Server{
		cfg:      cfg,
		db:       database,
		catalogs: catalogs,
		recorder: recorder,
		logger:   logger,
		shell:    shell,
		sessions: newRegistry(),
		stop:     make(chan struct{}),
	}

	s.router = s.buildRouter()

	// Components are retrieved through the router itself, so the loader sees
	// exactly what a browser would, shell fallback included.
	fetcher := loader.HandlerFetcher{Handler: s.router}
	s.loader = loader.New(fetcher, cfg.ShellMarker, logger)
	s.extractor = panel.NewExtractor(fetcher)
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/", s.handleShell)
		r.Handle("/assets/*", site.AssetHandler())
		r.Handle(site.ContentPrefix+"*", site.NewContent(s.cfg.ContentDir, s.prefersDark, s.logger))

		catalog.RegisterRoutes(r, s.catalogs)

		r.Route("/api/session", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/actions", s.handleAction)
		})
	})

	// Long-lived; kept out of the request timeout.
	r.Get("/ws/session/{id}", s.handleWebSocket)

	// Static hosts answer unknown paths with the shell page; so does this one.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		s.handleShell(w, r)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int { return s.sessions.len() }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go s.reapIdle(time.Minute)

	s.logger.Info().Str("addr", addr).Msg("showcase server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes every session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.closeSessions()
	return err
}

func (s *Server) closeSessions() {
	for _, sess := range s.sessions.drain() {
		sess.Close()
	}
}

func (s *Server) reapIdle(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			for _, sess := range s.sessions.idle(s.cfg.IdleTimeout) {
				s.logger.Debug().Str("session", sess.ID()).Msg("closing idle session")
				sess.Close()
			}
		}
	}
}

// themeStore returns the preference store of a client.
func (s *Server) themeStore(clientID string) theme.Store {
	switch {
	case s.db != nil:
		return theme.NewSQLStore(s.db, clientID)
	case s.cfg.PreferencesDir != "":
		// clientID is a validated uuid, safe as a file name.
		return theme.NewFileStore(filepath.Join(s.cfg.PreferencesDir, clientID+".json"))
	default:
		return theme.NewMemoryStore()
	}
}

// persistent reports whether preferences outlive a session.
func (s *Server) persistent() bool {
	return s.db != nil || s.cfg.PreferencesDir != ""
}

// prefersDark reports the stored theme preference of the requesting client.
func (s *Server) prefersDark(r *http.Request) bool {
	id, ok := existingClientID(r)
	if !ok || !s.persistent() {
		return false
	}
	v, ok, err := s.themeStore(id).Get(r.Context(), theme.StorageKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading theme preference")
		return false
	}
	return ok && v == "dark"
}

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	clientID(w, r)
	c := s.catalogs.Load()
	s.shell.Render(w, site.ShellData{
		Title:      s.cfg.ShellTitle,
		Dark:       s.prefersDark(r),
		Components: c.Count(),
		Categories: len(c.Categories()),
		Panels:     s.cfg.Panels,
	})
}

// hostOrigin is the origin the browser used to reach the server.
func hostOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
