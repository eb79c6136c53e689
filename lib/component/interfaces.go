package component

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to fill in props that are not
// serialized (lookups, owner-scoped containers). Called before every
// handler, including the default render.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce templ output.
//
// Render receives fully-hydrated props and should be pure.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle combines Hydrater and Renderer. Components bind themselves as
// their Lifecycle with Component.Bind.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// Handler handles a named action for props P.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

// Mountable is satisfied by any type embedding *Component[P]. The registry
// mounts Mountables under their prefix.
type Mountable interface {
	http.Handler
	Name() string
	Prefix() string
	attach(reg *Registry)
}
