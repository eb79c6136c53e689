package ui

import (
	"context"

	"github.com/a-h/templ"
	"github.com/pthm/hxhooks/lib/component"
)

// HTMXVersion is the htmx release the layout loads.
const HTMXVersion = "2.0.4"

// htmxConfig lets 422 responses swap, so re-rendered invalid forms show
// their field errors. Other error statuses keep the htmx default.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"422","swap":true,"error":false},{"code":"[45]..","swap":false,"error":true}]}`

// dismissScript removes toasts after their data-auto-dismiss delay.
const dismissScript = `document.body.addEventListener("htmx:oobAfterSwap",function(){document.querySelectorAll("[data-auto-dismiss]").forEach(function(el){if(el.dataset.armed)return;el.dataset.armed="1";setTimeout(function(){el.remove()},+el.dataset.autoDismiss)})});`

// Theme holds the CSS custom properties of the page.
type Theme struct {
	Accent     string
	Background string
	Surface    string
	Text       string
	Danger     string
}

// DefaultTheme is the demo palette.
var DefaultTheme = Theme{
	Accent:     "#4f46e5",
	Background: "#f6f7fb",
	Surface:    "#ffffff",
	Text:       "#1f2433",
	Danger:     "#d14343",
}

// CSS returns the stylesheet for t.
func (t Theme) CSS() string {
	return `:root{--accent:` + t.Accent + `;--bg:` + t.Background + `;--surface:` + t.Surface + `;--text:` + t.Text + `;--danger:` + t.Danger + `}` +
		`body{font-family:system-ui,sans-serif;background:var(--bg);color:var(--text);margin:0;padding:2rem}` +
		`main{display:grid;gap:1.5rem;grid-template-columns:repeat(auto-fit,minmax(320px,1fr))}` +
		`.card{background:var(--surface);border-radius:12px;padding:1.25rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}` +
		`.card-title{margin:0 0 1rem;font-size:1.1rem}` +
		`.btn{border:0;border-radius:8px;padding:.45rem .9rem;cursor:pointer;margin-right:.4rem}` +
		`.btn-primary{background:var(--accent);color:#fff}.btn-secondary{background:#e7e8f0}.btn-danger{background:var(--danger);color:#fff}.btn-ghost{background:none}` +
		`.switch{display:inline-flex;gap:.5rem;align-items:center;border:0;background:none;cursor:pointer}` +
		`.switch-thumb{width:2.2rem;height:1.2rem;border-radius:1rem;background:#c9cbd6;display:inline-block}` +
		`.switch-on .switch-thumb{background:var(--accent)}` +
		`.field{display:grid;gap:.25rem;margin-bottom:.75rem}.field input{padding:.45rem;border:1px solid #c9cbd6;border-radius:6px}` +
		`.field-invalid input{border-color:var(--danger)}.field-error{color:var(--danger);margin:0;font-size:.85rem}` +
		`.list{list-style:none;padding:0;margin:0}.list li{display:flex;gap:.6rem;align-items:center;padding:.35rem 0}.list-empty{color:#7a7f91}` +
		`.avatar{display:inline-grid;place-items:center;width:2rem;height:2rem;border-radius:50%;background:var(--accent);color:#fff;font-size:.8rem}` +
		`.badge{border-radius:1rem;padding:.1rem .6rem;font-size:.75rem;background:#e7e8f0}.badge-admin{background:#fde68a}.badge-editor{background:#bbf7d0}` +
		`.modal-backdrop{position:fixed;inset:0;background:rgba(0,0,0,.35);display:grid;place-items:center}` +
		`.modal{background:var(--surface);border-radius:12px;padding:1.25rem;min-width:300px}.modal-header{display:flex;justify-content:space-between}` +
		`.spinner{display:none}.htmx-request .spinner,.htmx-request.spinner{display:inline-block}` +
		`.toast-container{position:fixed;top:1rem;right:1rem;display:grid;gap:.5rem}` +
		`.toast{padding:.6rem 1rem;border-radius:8px;background:#1f2433;color:#fff}.toast-error{background:var(--danger)}.toast-success{background:#15803d}`
}

// Layout renders a full page around body.
func Layout(title string, theme Theme, body ...templ.Component) templ.Component {
	return fragment(func(ctx context.Context, w *writer) {
		w.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<meta name="htmx-config" content="`)
		w.text(htmxConfig)
		w.raw(`">`)
		w.raw(`<title>`)
		w.text(title)
		w.raw(`</title>`)
		w.raw(`<script src="https://unpkg.com/htmx.org@` + HTMXVersion + `"></script>`)
		w.raw(`<style>` + theme.CSS() + `</style></head><body>`)
		w.raw(`<h1>`)
		w.text(title)
		w.raw(`</h1><main>`)
		for _, c := range body {
			w.render(ctx, c)
		}
		w.raw(`</main>`)
		w.render(ctx, component.ToastContainer())
		w.raw(`<script>` + dismissScript + `</script></body></html>`)
	})
}
