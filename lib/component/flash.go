package component

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// DismissAfterMillis is how long a toast stays on screen.
var DismissAfterMillis = 3000

// Flash is a one-shot toast shown after an action.
type Flash struct {
	Level   string
	Message string
}

// RenderFlashesOOB renders flashes as an out-of-band swap appended to the
// #toasts container.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div id="toasts" hx-swap-oob="beforeend">`)
	for _, f := range flashes {
		level := f.Level
		if level == "" {
			level = FlashInfo
		}
		sb.WriteString(`<div class="toast toast-`)
		sb.WriteString(html.EscapeString(level))
		sb.WriteString(`" role="status" data-auto-dismiss="`)
		sb.WriteString(strconv.Itoa(DismissAfterMillis))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(f.Message))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// ToastContainer renders the #toasts element that flashes are appended to.
// Place it once per page.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="toasts" class="toast-container" aria-live="polite"></div>`)
		return err
	})
}
