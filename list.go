package hxhooks

import (
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Node is one rendered item of a List, keyed by its position.
type Node struct {
	Key       int
	Component templ.Component
}

// List is the result of RenderList. When Empty is set it renders Message;
// otherwise it renders Nodes in order.
type List struct {
	Empty   bool
	Message string
	Nodes   []Node
}

// RenderList maps items to keyed nodes. An empty items yields a single
// node carrying emptyMessage. RenderList keeps no state and calls
// renderItem once per item, in order.
func RenderList[T any](items []T, renderItem func(T) templ.Component, emptyMessage string) List {
	if len(items) == 0 {
		return List{Empty: true, Message: emptyMessage}
	}
	nodes := make([]Node, len(items))
	for i, item := range items {
		nodes[i] = Node{Key: i, Component: renderItem(item)}
	}
	return List{Nodes: nodes}
}

// Len returns the number of item nodes (zero for an empty list).
func (l List) Len() int {
	return len(l.Nodes)
}

// Render implements templ.Component.
//
//	<p class="list-empty">No items</p>
//	<ul class="list"><li data-key="0">…</li>…</ul>
func (l List) Render(ctx context.Context, w io.Writer) error {
	if l.Empty {
		_, err := io.WriteString(w, `<p class="list-empty">`+html.EscapeString(l.Message)+`</p>`)
		return err
	}
	if _, err := io.WriteString(w, `<ul class="list">`); err != nil {
		return err
	}
	for _, n := range l.Nodes {
		if _, err := io.WriteString(w, `<li data-key="`+strconv.Itoa(n.Key)+`">`); err != nil {
			return err
		}
		if n.Component != nil {
			if err := n.Component.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}
