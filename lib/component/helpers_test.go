package component

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestRequestHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsHTMX(req) || IsBoosted(req) {
		t.Fatal("plain request reported as htmx")
	}

	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "true")
	req.Header.Set("HX-Current-URL", "http://localhost/members")
	req.Header.Set("HX-Trigger-Name", "email")
	req.Header.Set("HX-Trigger", "signup-email")
	req.Header.Set("HX-Target", "signup")

	if !IsHTMX(req) || !IsBoosted(req) {
		t.Error("htmx headers not detected")
	}
	if got := CurrentURL(req); got != "http://localhost/members" {
		t.Errorf("CurrentURL() = %q", got)
	}
	if got := TriggerName(req); got != "email" {
		t.Errorf("TriggerName() = %q", got)
	}
	if got := TriggerID(req); got != "signup-email" {
		t.Errorf("TriggerID() = %q", got)
	}
	if got := TargetID(req); got != "signup" {
		t.Errorf("TargetID() = %q", got)
	}

	req.Header.Set("HX-Request", "yes")
	if IsHTMX(req) {
		t.Error(`IsHTMX() with "yes" = true, want false`)
	}
}

func TestBuildTriggerHeader(t *testing.T) {
	if got := BuildTriggerHeader("", map[string]any{"a": 1}); got != "" {
		t.Errorf("empty trigger = %q, want empty", got)
	}
	if got := BuildTriggerHeader("session:changed", nil); got != "session:changed" {
		t.Errorf("plain trigger = %q", got)
	}

	got := BuildTriggerHeader("session:changed", map[string]any{"id": "u1"})
	var decoded map[string]map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("trigger with data is not JSON: %q: %v", got, err)
	}
	if decoded["session:changed"]["id"] != "u1" {
		t.Errorf("decoded trigger = %v", decoded)
	}
}

func TestParseTriggerHeader(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"saved", []string{"saved"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{`{"b":{"x":{"nested":1}},"a":true}`, []string{"a", "b"}},
		{`{broken`, nil},
	}

	for _, tt := range tests {
		if got := parseTriggerHeader(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseTriggerHeader(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
