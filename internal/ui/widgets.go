package ui

import (
	"context"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	hxhooks "github.com/pthm/hxhooks"
)

// Variant selects a button style.
type Variant string

const (
	Primary   Variant = "primary"
	Secondary Variant = "secondary"
	Danger    Variant = "danger"
	Ghost     Variant = "ghost"
)

// Button renders a button carrying attrs, typically an Action's Attrs.
func Button(label string, v Variant, attrs templ.Attributes) templ.Component {
	if v == "" {
		v = Secondary
	}
	return Element("button", merge(templ.Attributes{
		"type":  "button",
		"class": "btn btn-" + string(v),
	}, attrs), Text(label))
}

// Switch renders an on/off switch. It is a button with aria-pressed.
func Switch(label string, on bool, attrs templ.Attributes) templ.Component {
	state := "false"
	class := "switch"
	if on {
		state = "true"
		class += " switch-on"
	}
	return Element("button", merge(templ.Attributes{
		"type":         "button",
		"role":         "switch",
		"class":        class,
		"aria-pressed": state,
	}, attrs), Element("span", templ.Attributes{"class": "switch-thumb"}), Text(label))
}

// Card renders a titled card. id is used as the swap target.
func Card(id, title string, body ...templ.Component) templ.Component {
	return Element("section", templ.Attributes{"id": id, "class": "card"},
		Element("h2", templ.Attributes{"class": "card-title"}, Text(title)),
		Element("div", templ.Attributes{"class": "card-body"}, body...),
	)
}

// Field renders a labelled text input with its inline error.
func Field(label, name, kind, value, errMsg string, attrs templ.Attributes) templ.Component {
	if kind == "" {
		kind = "text"
	}
	input := merge(templ.Attributes{
		"id":    "field-" + name,
		"name":  name,
		"type":  kind,
		"value": value,
	}, attrs)
	class := "field"
	if errMsg != "" {
		class += " field-invalid"
		input["aria-invalid"] = "true"
	}
	children := []templ.Component{
		Element("label", templ.Attributes{"for": "field-" + name}, Text(label)),
		Element("input", input),
	}
	if errMsg != "" {
		children = append(children, Element("p", templ.Attributes{"class": "field-error"}, Text(errMsg)))
	}
	return Element("div", templ.Attributes{"class": class}, children...)
}

// Modal renders a dialog when open and nothing otherwise.
func Modal(id, title string, open bool, body templ.Component, closeAttrs templ.Attributes) templ.Component {
	if !open {
		return templ.NopComponent
	}
	return Element("div", templ.Attributes{"id": id, "class": "modal-backdrop"},
		Element("div", templ.Attributes{"class": "modal", "role": "dialog", "aria-modal": "true"},
			Element("header", templ.Attributes{"class": "modal-header"},
				Element("h3", nil, Text(title)),
				Button("Close", Ghost, closeAttrs),
			),
			body,
		),
	)
}

// Spinner renders a request indicator shown by htmx while busy.
func Spinner(id string) templ.Component {
	return Element("span", templ.Attributes{"id": id, "class": "spinner htmx-indicator", "aria-hidden": "true"})
}

// Initials returns up to two uppercase initials of name.
func Initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// Avatar renders a circular initials badge for name.
func Avatar(name string) templ.Component {
	return Element("span", templ.Attributes{"class": "avatar", "title": name}, Text(Initials(name)))
}

// RoleLabel is the display label of a role.
func RoleLabel(r hxhooks.Role) string {
	// A Caser is stateful, so one per call.
	return cases.Title(language.English).String(string(r))
}

// RoleBadge renders a role pill.
func RoleBadge(r hxhooks.Role) templ.Component {
	return Element("span", templ.Attributes{"class": "badge badge-" + string(r)}, Text(RoleLabel(r)))
}

// Notice renders an inline status line.
func Notice(kind, message string) templ.Component {
	if message == "" {
		return templ.NopComponent
	}
	return Element("p", templ.Attributes{"class": "notice notice-" + kind, "role": "status"}, Text(message))
}

// Raw renders s unescaped. Only for trusted constants.
func Raw(s string) templ.Component {
	return fragment(func(_ context.Context, w *writer) { w.raw(s) })
}
