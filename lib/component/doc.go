// Package component binds hxhooks state containers to server-rendered,
// HTMX-driven UI components.
//
// A component owns a Props type P that carries its state snapshot between
// requests. Props are encoded into every URL the component emits, so the
// server holds no per-client state unless a component chooses to (see the
// demo's debounced search, which keeps one Debouncer per owner).
//
// # Core Concepts
//
// Components embed *Component[P] and bind themselves as the lifecycle
// implementation:
//
//	type ToggleCard struct {
//	    *component.Component[ToggleProps]
//	}
//
//	func NewToggleCard() *ToggleCard {
//	    c := &ToggleCard{Component: component.New[ToggleProps]("toggle")}
//	    c.Bind(c)
//	    c.Action("toggle", c.handleToggle)
//	    return c
//	}
//
// The lifecycle is formalized through two interfaces:
//   - Hydrater[P]: Hydrate(ctx, *P) fills in data that is not serialized
//   - Renderer[P]: Render(ctx, P) produces the templ.Component output
//
// # Actions
//
// Handlers receive decoded, hydrated props, apply a state transition and
// return a Result:
//
//	func (c *ToggleCard) handleToggle(ctx context.Context, p ToggleProps, r *http.Request) component.Result[ToggleProps] {
//	    p.On = hxhooks.NewToggle(p.On, nil).Toggle()
//	    return component.OK(p)
//	}
//
// Templates wire actions with the Action builder:
//
//	c.Call("toggle", props).Target("closest .card").Attrs()
//
// # Security Model
//
// Props are signed (HMAC, visible) by default or encrypted
// (XChaCha20-Poly1305, opaque) when the component is marked Sensitive.
// Mutating methods require the HX-Request header (see Registry.Handler).
//
// # Errors
//
// Handler errors returned through Err, decoding failures and hydration
// failures all reach Registry.OnError. The default handler renders
// *hxhooks.ValidationError as a 422 toast so that validation failures are
// always shown to the user.
package component
