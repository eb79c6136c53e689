package component

import "net/http"

// Result[P] is returned from action handlers. It carries the next props
// snapshot plus the side effects the framework applies after the handler
// returns: flashes, events, headers and status.
//
//	return component.OK(props)
//	return component.OK(props).Flash(component.FlashSuccess, "Saved")
//	return component.Invalid(props).Flash(component.FlashError, "Fix the form")
//	return component.Err(props, err)
//	return component.OK(props).Trigger("session:changed", map[string]any{"id": id})
type Result[P any] struct {
	props              P
	err                error
	redirect           string
	flashes            []Flash
	trigger            string
	triggerData        map[string]any
	triggerAfterSettle string
	headers            map[string]string
	status             int
	skip               bool
}

// OK renders props with status 200.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Invalid renders props with status 422. Used when a form transition
// produced field errors that the rendered view displays inline.
func Invalid[P any](props P) Result[P] {
	return Result[P]{props: props, status: http.StatusUnprocessableEntity}
}

// Err hands err to the registry's OnError. Nothing is rendered by the
// component itself.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip means the handler wrote its own response.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect navigates the browser via HX-Redirect.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// Flash appends a toast. Flashes are rendered out-of-band into #toasts.
func (r Result[P]) Flash(level, message string) Result[P] {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits event through HX-Trigger. With data, the header is a JSON
// object and listeners receive the data as evt.detail.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// TriggerAfterSettle emits event once the swap has settled.
func (r Result[P]) TriggerAfterSettle(event string) Result[P] {
	r.triggerAfterSettle = event
	return r
}

// TriggerURLSync emits "url:sync" after settle, so components listening for
// it re-read the URL that PushURL just set.
func (r Result[P]) TriggerURLSync() Result[P] {
	return r.TriggerAfterSettle("url:sync")
}

// PushURL updates the browser URL via HX-Push-Url.
func (r Result[P]) PushURL(url string) Result[P] {
	return r.Header("HX-Push-Url", url)
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status sets the HTTP status code. 0 means the default for the result kind.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

func (r Result[P]) GetProps() P { return r.props }
func (r Result[P]) GetErr() error { return r.err }
func (r Result[P]) GetRedirect() string { return r.redirect }
func (r Result[P]) GetFlashes() []Flash { return r.flashes }
func (r Result[P]) GetTrigger() string { return r.trigger }
func (r Result[P]) GetTriggerData() map[string]any { return r.triggerData }
func (r Result[P]) GetTriggerAfterSettle() string { return r.triggerAfterSettle }
func (r Result[P]) GetHeaders() map[string]string { return r.headers }
func (r Result[P]) GetStatus() int { return r.status }
func (r Result[P]) ShouldSkip() bool { return r.skip }
