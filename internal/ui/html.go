package ui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// writer accumulates the first write error so templates read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// attrs writes attributes in key order. true booleans render as bare
// names, false booleans are dropped.
func (w *writer) attrs(ctx context.Context, a templ.Attributes) {
	if w.err != nil || len(a) == 0 {
		return
	}
	ordered := make(templ.OrderedAttributes, 0, len(a))
	for k, v := range a {
		switch v.(type) {
		case string, bool:
		default:
			v = fmt.Sprint(v)
		}
		ordered = append(ordered, templ.KeyValue[string, any]{Key: k, Value: v})
	}
	slices.SortFunc(ordered, func(x, y templ.KeyValue[string, any]) int { return strings.Compare(x.Key, y.Key) })
	w.err = templ.RenderAttributes(ctx, w.w, ordered)
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
}

func fragment(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}

// merge returns base overlaid with extra. Neither input is modified.
func merge(base, extra templ.Attributes) templ.Attributes {
	out := make(templ.Attributes, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return fragment(func(_ context.Context, w *writer) { w.text(s) })
}

// Group renders children in order.
func Group(children ...templ.Component) templ.Component {
	return fragment(func(ctx context.Context, w *writer) {
		for _, c := range children {
			w.render(ctx, c)
		}
	})
}

var voidElements = map[string]bool{"input": true, "br": true, "hr": true, "img": true, "meta": true, "link": true}

// Element renders <tag attrs>children</tag>. Void elements get no closing
// tag and ignore children.
func Element(tag string, attrs templ.Attributes, children ...templ.Component) templ.Component {
	return fragment(func(ctx context.Context, w *writer) {
		w.raw("<" + tag)
		w.attrs(ctx, attrs)
		w.raw(">")
		if voidElements[tag] {
			return
		}
		for _, c := range children {
			w.render(ctx, c)
		}
		w.raw("</" + tag + ">")
	})
}
