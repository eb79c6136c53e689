package component

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component as an HTML response.
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(r.Context(), w)
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether the request is an hx-boost navigation.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL returns the browser URL sent in HX-Current-URL.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TriggerName returns the name of the element that triggered the request.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TriggerID returns the id of the element that triggered the request.
func TriggerID(r *http.Request) string {
	return r.Header.Get("HX-Trigger")
}

// TargetID returns the id of the element receiving the response.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// BuildTriggerHeader formats an HX-Trigger value.
//
//	"saved", nil                -> saved
//	"saved", {"id": "1"}        -> {"saved":{"id":"1"}}
func BuildTriggerHeader(trigger string, data map[string]any) string {
	if trigger == "" {
		return ""
	}
	if data == nil {
		return trigger
	}
	b, err := json.Marshal(map[string]any{trigger: data})
	if err != nil {
		return trigger
	}
	return string(b)
}
