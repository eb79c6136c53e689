package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies key stability for string helpers.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Component", KeyComponent, "toggle", Component("toggle")},
		{"Action", KeyAction, "reset", Action("reset")},
		{"Method", KeyMethod, "POST", Method("POST")},
		{"Path", KeyPath, "/_c/x", Path("/_c/x")},
		{"Field", KeyField, "email", Field("email")},
		{"Owner", KeyOwner, "o1", Owner("o1")},
		{"UserID", KeyUserID, "u1", UserID("u1")},
		{"Query", KeyQuery, "ada", Query("ada")},
		{"Addr", KeyAddr, ":8080", Addr(":8080")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log queries.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if v := Status(422); v.Key != KeyStatus || v.Value.Int64() != 422 {
		t.Fatalf("Status mismatch: %v", v)
	}
	if v := Results(3); v.Key != KeyResults || v.Value.Int64() != 3 {
		t.Fatalf("Results mismatch: %v", v)
	}
	if v := Duration(1500 * time.Microsecond); v.Key != KeyDurationMS || v.Value.Float64() != 1.5 {
		t.Fatalf("Duration mismatch: %v", v)
	}
}

func TestErrorHelper(t *testing.T) {
	if v := Error(nil); v.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", v.Value.String())
	}
	if v := Error(errors.New("boom")); v.Key != KeyError || v.Value.String() != "boom" {
		t.Fatalf("unexpected error attr: %v", v)
	}
}
