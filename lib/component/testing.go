package component

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// TestResult holds a rendered response for assertions in tests.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
	RedirectURL     string
}

// TestRender runs Hydrate and Render without HTTP mechanics.
//
//	res, err := component.TestRender(card, ToggleProps{On: true})
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestCall sends the request an Action describes, the way htmx would:
// hx-vals plus form travel in the query string for GET, HEAD and DELETE
// and in the body otherwise.
//
//	res := component.TestCall(reg.Handler(), card.Call("toggle", props), nil)
func TestCall(h http.Handler, a *Action, form map[string]string) *TestResult {
	b := NewTestRequest(a.Method(), a.URL()).WithFormValues(form)
	for k, v := range a.vals {
		if _, set := form[k]; !set {
			b.WithFormData(k, fmt.Sprint(v))
		}
	}
	return b.Execute(h)
}

// TestAction sends an htmx request with method and form data to url.
func TestAction(h http.Handler, url, method string, form map[string]string) *TestResult {
	return NewTestRequest(method, url).WithFormValues(form).Execute(h)
}

// TestGet sends an htmx GET to url.
func TestGet(h http.Handler, url string) *TestResult {
	return NewTestRequest(http.MethodGet, url).Execute(h)
}

// TestPost sends an htmx POST with form data to url.
func TestPost(h http.Handler, url string, form map[string]string) *TestResult {
	return NewTestRequest(http.MethodPost, url).WithFormValues(form).Execute(h)
}

func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent reports whether event was emitted through HX-Trigger.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// HasFlash reports whether a toast with level and message was rendered.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

func (r *TestResult) HasFlashLevel(level string) bool {
	for _, f := range r.Flashes {
		if f.Level == level {
			return true
		}
	}
	return false
}

func (r *TestResult) WasRedirected() bool { return r.RedirectURL != "" }
func (r *TestResult) IsOK() bool { return r.StatusCode == http.StatusOK }
func (r *TestResult) HasStatus(code int) bool { return r.StatusCode == code }

// parseTriggerHeader returns the event names in an HX-Trigger value, which
// is either a comma-separated list or a JSON object keyed by event.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}
	if strings.HasPrefix(trigger, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &obj); err != nil {
			return nil
		}
		events := make([]string, 0, len(obj))
		for k := range obj {
			events = append(events, k)
		}
		sort.Strings(events)
		return events
	}
	var events []string
	for _, p := range strings.Split(trigger, ",") {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// parseFlashesFromHTML extracts toasts rendered by RenderFlashesOOB.
func parseFlashesFromHTML(html string) []Flash {
	const marker = `<div class="toast toast-`
	var flashes []Flash
	rest := html
	for {
		i := strings.Index(rest, marker)
		if i < 0 {
			return flashes
		}
		rest = rest[i+len(marker):]
		level, after, ok := strings.Cut(rest, `"`)
		if !ok {
			return flashes
		}
		_, body, ok := strings.Cut(after, ">")
		if !ok {
			return flashes
		}
		msg, tail, ok := strings.Cut(body, "</div>")
		if !ok {
			return flashes
		}
		flashes = append(flashes, Flash{Level: level, Message: unescapeHTML(msg)})
		rest = tail
	}
}

func unescapeHTML(s string) string {
	return strings.NewReplacer("&lt;", "<", "&gt;", ">", "&#34;", `"`, "&#39;", "'", "&amp;", "&").Replace(s)
}

// TestRequestBuilder builds htmx requests for tests.
//
//	res := component.NewTestRequest(http.MethodPost, url).
//	    WithFormData("email", "ada@example.com").
//	    Execute(reg.Handler())
type TestRequestBuilder struct {
	method   string
	url      string
	formData url.Values
	headers  map[string]string
	ctx      context.Context
	noHTMX   bool
}

func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string][]string),
		headers:  make(map[string]string),
		ctx:      context.Background(),
	}
}

func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData.Set(key, value)
	return b
}

func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.formData.Set(k, v)
	}
	return b
}

func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// WithoutHTMX drops the HX-Request header, as a plain browser form would.
func (b *TestRequestBuilder) WithoutHTMX() *TestRequestBuilder {
	b.noHTMX = true
	return b
}

// Execute serves the request through h and collects the response.
func (b *TestRequestBuilder) Execute(h http.Handler) *TestResult {
	var req *http.Request
	if paramsInQuery(b.method) {
		req = httptest.NewRequest(b.method, b.url, nil)
		if len(b.formData) > 0 {
			q := req.URL.Query()
			for k, vs := range b.formData {
				for _, v := range vs {
					q.Add(k, v)
				}
			}
			req.URL.RawQuery = q.Encode()
		}
	} else {
		req = httptest.NewRequest(b.method, b.url, strings.NewReader(b.formData.Encode()))
		if len(b.formData) > 0 {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	req = req.WithContext(b.ctx)
	if !b.noHTMX {
		req.Header.Set("HX-Request", "true")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
		Flashes:     parseFlashesFromHTML(rec.Body.String()),
	}
	res.TriggeredEvents = parseTriggerHeader(rec.Header().Get("HX-Trigger"))
	return res
}

// paramsInQuery reports whether htmx sends parameters for method in the
// query string rather than the body.
func paramsInQuery(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return true
	}
	return false
}

// MockHydrater replaces a component's Hydrate with HydrateFunc and
// remembers the last props it saw.
type MockHydrater[P any] struct {
	Component   Lifecycle[P]
	HydrateFunc func(ctx context.Context, props *P) error
	last        *P
}

func NewMockHydrater[P any](comp Lifecycle[P], fn func(ctx context.Context, props *P) error) *MockHydrater[P] {
	return &MockHydrater[P]{Component: comp, HydrateFunc: fn}
}

func (m *MockHydrater[P]) Hydrate(ctx context.Context, props *P) error {
	m.last = props
	return m.HydrateFunc(ctx, props)
}

func (m *MockHydrater[P]) Render(ctx context.Context, props P) templ.Component {
	return m.Component.Render(ctx, props)
}

func (m *MockHydrater[P]) LastHydratedProps() *P {
	return m.last
}
