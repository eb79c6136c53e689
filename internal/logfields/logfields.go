package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by every package.
const (
	KeyComponent  = "component"
	KeyAction     = "action"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyField      = "field"
	KeyOwner      = "owner"
	KeyUserID     = "user_id"
	KeyQuery      = "query"
	KeyResults    = "results"
	KeyDurationMS = "duration_ms"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Helpers returning slog.Attr. Each is granular so callers can compose.
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func Action(name string) slog.Attr { return slog.String(KeyAction, name) }
func Method(m string) slog.Attr { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func Field(f string) slog.Attr { return slog.String(KeyField, f) }
func Owner(id string) slog.Attr { return slog.String(KeyOwner, id) }
func UserID(id string) slog.Attr { return slog.String(KeyUserID, id) }
func Query(q string) slog.Attr { return slog.String(KeyQuery, q) }
func Results(n int) slog.Attr { return slog.Int(KeyResults, n) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }

// Duration records d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
