package component

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/lib/encoding"
)

// RoutePrefix is the path every component is mounted under.
const RoutePrefix = "/_c/"

// Observer receives one call per component request once the response has
// been written.
type Observer interface {
	ObserveRequest(component, action string, status int, elapsed time.Duration)
}

// Registry mounts components and owns the props encoder they share.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *encoding.Encoder
	components map[string]Mountable

	Logger   *slog.Logger
	Observer Observer

	// OnError writes the response for handler, decoding and hydration
	// errors. Defaults to DefaultErrorHandler(Logger).
	OnError func(http.ResponseWriter, *http.Request, error)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *slog.Logger) Option {
	return func(reg *Registry) { reg.Logger = l }
}

// WithObserver sets the request observer.
func WithObserver(o Observer) Option {
	return func(reg *Registry) { reg.Observer = o }
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) Option {
	return func(reg *Registry) { reg.OnError = fn }
}

// NewRegistry creates a registry whose props are signed or sealed with
// keys derived from key.
func NewRegistry(key []byte, opts ...Option) (*Registry, error) {
	enc, err := encoding.NewEncoder(key)
	if err != nil {
		return nil, fmt.Errorf("component: create encoder: %w", err)
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]Mountable),
		Logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(reg)
	}
	if reg.OnError == nil {
		reg.OnError = DefaultErrorHandler(reg.Logger)
	}
	return reg, nil
}

// Encoder returns the shared props encoder.
func (reg *Registry) Encoder() *encoding.Encoder {
	return reg.encoder
}

// Add mounts components under their prefixes.
// Panics on a prefix collision or a component that never called Bind.
func (reg *Registry) Add(components ...Mountable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.Prefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("component: prefix collision for %q", prefix))
		}
		comp.attach(reg)
		reg.components[prefix] = comp
		reg.mux.Handle(prefix+"/", comp)
		reg.Logger.Debug("component mounted", logfields.Component(comp.Name()), logfields.Path(prefix))
	}
}

// Len returns the number of mounted components.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.components)
}

// Handler returns the HTTP handler for component routes. Mount it at
// RoutePrefix.
//
// Mutating methods require the HX-Request header, which a cross-site form
// post cannot set.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		if reg.Observer == nil {
			reg.mux.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		reg.mux.ServeHTTP(sw, r)
		name, action := reg.route(r.URL.Path)
		reg.Observer.ObserveRequest(name, action, sw.code(), time.Since(start))
	})
}

// route maps a request path to the component name and action.
func (reg *Registry) route(path string) (string, string) {
	seg, action, _ := strings.Cut(strings.TrimPrefix(path, RoutePrefix), "/")
	reg.mu.RLock()
	comp, ok := reg.components[RoutePrefix+seg]
	reg.mu.RUnlock()
	if !ok {
		return "unknown", ""
	}
	if action == "" {
		action = "render"
	}
	return comp.Name(), action
}

// DefaultErrorHandler logs err and maps it to a status.
//
// A *hxhooks.ValidationError is answered with 422 and an error toast. The
// response sets HX-Reswap: none so only the toast is applied.
func DefaultErrorHandler(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if ve, ok := hxhooks.AsValidation(err); ok {
			logger.Info("validation failed", logfields.Path(r.URL.Path), logfields.Field(ve.Field))
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("HX-Reswap", string(SwapNone))
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(RenderFlashesOOB([]Flash{{Level: FlashError, Message: ve.Message}})))
			return
		}

		status, text := http.StatusInternalServerError, "Internal error"
		switch {
		case IsNotFound(err):
			status, text = http.StatusNotFound, "Not found"
		case IsDecryptionError(err):
			status, text = http.StatusBadRequest, "Bad request"
		case errors.Is(err, ErrMethodNotAllowed):
			status, text = http.StatusMethodNotAllowed, "Method not allowed"
		}

		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "component request failed",
			logfields.Path(r.URL.Path), logfields.Status(status), logfields.Error(err))
		http.Error(w, text, status)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
