package formhttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/forms"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Catalog resolves form names to schemas.
type Catalog interface {
	Names() []string
	Lookup(name string) (*form.Schema, error)
}

type mapCatalog map[string]*form.Schema

// NewCatalog serves a fixed set of schemas. Unknown names fail with
// forms.ErrUnknownForm.
func NewCatalog(schemas map[string]*form.Schema) Catalog {
	return mapCatalog(schemas)
}

func (c mapCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c mapCatalog) Lookup(name string) (*form.Schema, error) {
	s, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", forms.ErrUnknownForm, name)
	}
	return s, nil
}

// Service is the HTTP adapter over form sessions.
type Service struct {
	cfg      Config
	store    kvstore.Store
	catalog  Catalog
	sessions *registry
	visitors *visitors
	// saves serializes writes to one visitor's storage key within the process.
	saves keyLocks
	log   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides time.Now for session idle tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds the adapter. store is the root store; every visitor gets its
// own prefixed namespace of it.
func New(cfg Config, store kvstore.Store, catalog Catalog, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:     cfg,
		store:   store,
		catalog: catalog,
		log:     logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("formhttp"))

	v, err := newVisitors(cfg)
	if err != nil {
		return nil, err
	}
	s.visitors = v

	reg, err := newRegistry(cfg.SessionCapacity, cfg.SessionIdleTimeout, s.now)
	if err != nil {
		return nil, err
	}
	reg.onEvict = func(ls *liveSession) {
		s.log.Info("form session evicted",
			logger.SessionID(ls.id),
			logger.Form(ls.form),
			logger.VisitorID(ls.visitor),
		)
	}
	s.sessions = reg

	return s, nil
}

// Handle returns the router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)

	r.Get("/healthz", httpserver.HealthCheckHandler(s.log, s.cfg.HealthTimeout, httpserver.Check{
		Name: "store",
		Fn: func(ctx context.Context) error {
			return kvstore.Ping(ctx, s.store)
		},
	}))

	r.Group(func(r chi.Router) {
		r.Use(s.visitors.middleware)

		r.Get("/forms", s.listForms)
		r.Post("/forms/{form}/sessions", s.createSession)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Put("/fields/{field}", s.setField)
			r.Post("/submit", s.submit)
		})

		r.Get("/summary/{form}", s.getSummary)
		r.Delete("/summary/{form}", s.clearSummary)

		r.Get("/theme", s.getTheme)
		r.Post("/theme/toggle", s.toggleTheme)
	})

	return r
}

// Sessions returns the number of live sessions.
func (s *Service) Sessions() int {
	return s.sessions.len()
}

// SweepEvery drops idle sessions on every tick until ctx is done.
func (s *Service) SweepEvery(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.sessions.sweep(); n > 0 {
				s.log.DebugContext(ctx, "idle form sessions dropped", slog.Int("count", n))
			}
		}
	}
}
