package component

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/lib/encoding"
)

// actionDef holds metadata about a registered action.
type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component[P] is the base type embedded by user components.
// P is the Props type for this component.
//
// Each component instance receives a deterministic URL prefix based on its
// name and source location (file:line of the New call), so two instances
// with the same name still get distinct routes.
type Component[P any] struct {
	name      string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef[P]
	lifecycle Lifecycle[P]
	reg       *Registry
}

// New creates a new component with the given name. Props are signed by
// default; call Sensitive to encrypt them.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
	}
}

// Sensitive marks the component as sensitive, enabling full encryption of
// its props.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Bind attaches the concrete component that implements the lifecycle.
// Components call it from their constructor: c.Bind(c).
func (c *Component[P]) Bind(l Lifecycle[P]) {
	c.lifecycle = l
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the component's URL prefix.
// All actions for this component are mounted under this prefix.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// IsSensitive returns whether the component uses encrypted props.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Action registers a named action handler with the default POST method.
//
//	c.Action("edit", c.handleEdit)  // POST by default
//	c.Action("raw", c.handleRaw).Method(http.MethodGet)
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{setMethod: func(m string) { def.method = m }}
}

// HasAction reports whether name is registered.
func (c *Component[P]) HasAction(name string) bool {
	_, ok := c.actions[name]
	return ok
}

// Refresh returns an action builder for the default render (GET).
//
//	c.Refresh(props).Every(5 * time.Second).Attrs()
func (c *Component[P]) Refresh(props P) *Action {
	return c.buildAction("", http.MethodGet, props)
}

// Call returns an action builder for a registered action with props
// encoded. GET actions carry props in the query string, other methods in
// hx-vals.
func (c *Component[P]) Call(action string, props P) *Action {
	method := http.MethodPost
	if def, ok := c.actions[action]; ok {
		method = def.method
	}
	return c.buildAction(action, method, props)
}

// Lazy returns a templ component that defers rendering until the
// placeholder scrolls into view.
func (c *Component[P]) Lazy(props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.Refresh(props).URL(), placeholder, "intersect once")
}

// Defer returns a templ component that loads right after page load.
func (c *Component[P]) Defer(props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.Refresh(props).URL(), placeholder, "load")
}

// Encode encodes props the way this component's URLs carry them.
func (c *Component[P]) Encode(props P) (string, error) {
	enc := c.encoder()
	if enc == nil {
		return "", fmt.Errorf("component %s: not registered", c.name)
	}
	return enc.Encode(props, c.sensitive)
}

func (c *Component[P]) attach(reg *Registry) {
	if c.lifecycle == nil {
		panic(fmt.Sprintf("component: %q has no lifecycle; call Bind in its constructor", c.name))
	}
	c.reg = reg
}

func (c *Component[P]) encoder() *encoding.Encoder {
	if c.reg == nil {
		return nil
	}
	return c.reg.encoder
}

func (c *Component[P]) logger() *slog.Logger {
	if c.reg == nil || c.reg.Logger == nil {
		return slog.Default()
	}
	return c.reg.Logger
}

func (c *Component[P]) buildAction(action, method string, props P) *Action {
	path := c.prefix + "/" + action
	encoded, err := c.Encode(props)
	if err != nil {
		c.logger().Error("encode props",
			logfields.Component(c.name), logfields.Action(action), logfields.Error(err))
		return NewAction(path, method)
	}
	if method == http.MethodGet {
		return NewAction(path+"?p="+url.QueryEscape(encoded), method)
	}
	return NewAction(path, method).Vals(map[string]any{"p": encoded})
}

// ServeHTTP decodes props, hydrates them, dispatches to the action named
// by the path and renders the result.
//
//	GET  <prefix>/        default render
//	<M>  <prefix>/<name>  registered action with method M
func (c *Component[P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.lifecycle == nil {
		c.fail(w, r, fmt.Errorf("%w: %s", ErrUnbound, c.name))
		return
	}

	var props P
	if encoded := r.FormValue("p"); encoded != "" {
		enc := c.encoder()
		if enc == nil {
			c.fail(w, r, fmt.Errorf("component %s: not registered", c.name))
			return
		}
		if err := enc.Decode(encoded, c.sensitive, &props); err != nil {
			c.fail(w, r, wrapEncodingError(err))
			return
		}
	}

	if err := c.lifecycle.Hydrate(r.Context(), &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %s: %v", ErrHydrationFailed, c.name, err))
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if name == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			c.fail(w, r, ErrMethodNotAllowed)
			return
		}
		c.render(w, r, props, nil, 0)
		return
	}

	def, ok := c.actions[name]
	if !ok {
		c.fail(w, r, fmt.Errorf("%w: action %q on %s", ErrNotFound, name, c.name))
		return
	}
	if def.method != r.Method {
		c.fail(w, r, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, name))
		return
	}

	c.logger().Debug("dispatch action",
		logfields.Component(c.name), logfields.Action(name), logfields.Method(r.Method))
	c.handleResult(w, r, def.handler(r.Context(), props, r))
}

func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, result Result[P]) {
	if err := result.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	h := w.Header()
	for k, v := range result.GetHeaders() {
		h.Set(k, v)
	}
	if trigger := BuildTriggerHeader(result.GetTrigger(), result.GetTriggerData()); trigger != "" {
		h.Set("HX-Trigger", trigger)
	}
	if after := result.GetTriggerAfterSettle(); after != "" {
		h.Set("HX-Trigger-After-Settle", after)
	}

	if redirect := result.GetRedirect(); redirect != "" {
		h.Set("HX-Redirect", redirect)
		w.WriteHeader(statusOr(result.GetStatus(), http.StatusOK))
		return
	}
	if result.ShouldSkip() {
		if status := result.GetStatus(); status != 0 {
			w.WriteHeader(status)
		}
		return
	}

	c.render(w, r, result.GetProps(), result.GetFlashes(), result.GetStatus())
}

// render writes the component and any flashes. Output is buffered so that a
// failing render still produces a clean error response.
func (c *Component[P]) render(w http.ResponseWriter, r *http.Request, props P, flashes []Flash, status int) {
	var buf bytes.Buffer
	if err := c.lifecycle.Render(r.Context(), props).Render(r.Context(), &buf); err != nil {
		c.fail(w, r, fmt.Errorf("render %s: %w", c.name, err))
		return
	}
	buf.WriteString(RenderFlashesOOB(flashes))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusOr(status, http.StatusOK))
	_, _ = w.Write(buf.Bytes())
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.reg != nil && c.reg.OnError != nil {
		c.reg.OnError(w, r, err)
		return
	}
	DefaultErrorHandler(c.logger())(w, r, err)
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		// Base filename only, for portability across environments
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// lazyComponent creates a placeholder that loads content on trigger.
func lazyComponent(url string, placeholder templ.Component, trigger string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
			templ.EscapeString(url), templ.EscapeString(trigger))
		if err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}
