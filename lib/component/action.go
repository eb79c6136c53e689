package component

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// ActionBuilder configures action registration.
//
//	c.Action("edit", handler)  // POST by default
//	c.Action("raw", handler).Method(http.MethodGet)
type ActionBuilder struct {
	setMethod func(string)
}

// Method overrides the default POST method for an action.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	ab.setMethod(strings.ToUpper(m))
	return ab
}

// Action is a fluent builder for the HTMX attributes that invoke a
// component action. Obtain one from Component.Call or Component.Refresh.
//
//	c.Call("toggle", props).Target("closest .card").Attrs()
type Action struct {
	url     string
	method  string
	target  string
	swap    SwapMode
	trigger string
	confirm string
	indic   string
	pushURL string
	include string
	vals    map[string]any
}

// NewAction creates an action for url with the given HTTP method.
// An empty method means GET.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method, swap: SwapOuter}
}

// URL returns the action's URL, including encoded props for GET actions.
func (a *Action) URL() string {
	return a.url
}

// Method returns the action's HTTP method.
func (a *Action) Method() string {
	return a.method
}

// Target sets hx-target to a CSS selector.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the element carrying the attributes.
func (a *Action) TargetThis() *Action { return a.Target("this") }

// TargetClosest targets the closest ancestor matching selector.
func (a *Action) TargetClosest(selector string) *Action { return a.Target("closest " + selector) }

// TargetFind targets the first descendant matching selector.
func (a *Action) TargetFind(selector string) *Action { return a.Target("find " + selector) }

// TargetNext targets the next sibling matching selector.
func (a *Action) TargetNext(selector string) *Action { return a.Target("next " + selector) }

// TargetPrevious targets the previous sibling matching selector.
func (a *Action) TargetPrevious(selector string) *Action { return a.Target("previous " + selector) }

// Swap sets the hx-swap mode. The default is SwapOuter.
func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

func (a *Action) SwapInner() *Action { return a.Swap(SwapInner) }
func (a *Action) SwapBeforeEnd() *Action { return a.Swap(SwapBeforeEnd) }
func (a *Action) SwapAfterBegin() *Action { return a.Swap(SwapAfterBegin) }
func (a *Action) SwapNone() *Action { return a.Swap(SwapNone) }
func (a *Action) SwapDelete() *Action { return a.Swap(SwapDelete) }
func (a *Action) SwapBeforeBegin() *Action { return a.Swap(SwapBeforeBegin) }
func (a *Action) SwapAfterEnd() *Action { return a.Swap(SwapAfterEnd) }

// Trigger sets a raw hx-trigger value.
func (a *Action) Trigger(trigger string) *Action {
	a.trigger = trigger
	return a
}

// Every polls the action on an interval.
func (a *Action) Every(d time.Duration) *Action {
	return a.Trigger("every " + formatDuration(d))
}

// OnEvent fires the action when event is dispatched anywhere on the page.
func (a *Action) OnEvent(event string) *Action {
	return a.Trigger(event + " from:body")
}

// OnLoad fires the action once the element is loaded.
func (a *Action) OnLoad() *Action { return a.Trigger("load") }

// OnIntersect fires the action the first time the element enters the viewport.
func (a *Action) OnIntersect() *Action { return a.Trigger("intersect once") }

// OnRevealed fires the action when the element is scrolled into view.
func (a *Action) OnRevealed() *Action { return a.Trigger("revealed") }

// OnInput fires on every input event. Timing is left to the server, which
// owns debouncing.
func (a *Action) OnInput() *Action { return a.Trigger("input") }

// OnKeyup fires on keyup, optionally filtered (e.g. "[key=='Enter']").
func (a *Action) OnKeyup(filter string) *Action { return a.Trigger("keyup" + filter) }

// Confirm prompts the user before sending the request.
func (a *Action) Confirm(message string) *Action {
	a.confirm = message
	return a
}

// Indicator sets the element shown while the request is in flight.
func (a *Action) Indicator(selector string) *Action {
	a.indic = selector
	return a
}

// PushURL pushes url into browser history after the swap.
func (a *Action) PushURL(url string) *Action {
	a.pushURL = url
	return a
}

// Include adds the values of elements matching selector to the request.
func (a *Action) Include(selector string) *Action {
	a.include = selector
	return a
}

// Vals merges extra values into hx-vals. The encoded props key "p" cannot
// be overridden once set.
func (a *Action) Vals(vals map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(vals))
	}
	for k, v := range vals {
		if _, ok := a.vals["p"]; ok && k == "p" {
			continue
		}
		a.vals[k] = v
	}
	return a
}

// Attrs returns the HTMX attributes for spreading onto an element.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{
		"hx-" + strings.ToLower(a.method): a.url,
		"hx-swap":                         string(a.swap),
	}
	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.confirm != "" {
		attrs["hx-confirm"] = a.confirm
	}
	if a.indic != "" {
		attrs["hx-indicator"] = a.indic
	}
	if a.pushURL != "" {
		attrs["hx-push-url"] = a.pushURL
	}
	if a.include != "" {
		attrs["hx-include"] = a.include
	}
	if len(a.vals) > 0 {
		data, err := json.Marshal(a.vals)
		if err == nil {
			attrs["hx-vals"] = string(data)
		}
	}
	return attrs
}

// AsLink returns href plus the action attributes, so the element degrades
// to a plain link when JavaScript is unavailable. Only GET actions can be
// links; other methods return Attrs unchanged.
func (a *Action) AsLink() templ.Attributes {
	attrs := a.Attrs()
	if a.method == http.MethodGet {
		attrs["href"] = a.url
	}
	return attrs
}

func formatDuration(d time.Duration) string {
	switch {
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", int64(d/time.Second))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
