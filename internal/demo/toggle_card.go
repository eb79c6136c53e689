package demo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/internal/ui"
	"github.com/pthm/hxhooks/lib/component"
)

// ToggleProps carries the switch value between requests.
type ToggleProps struct {
	On bool `msgpack:"on"`
}

// ToggleCard is a notifications switch backed by a Toggle.
type ToggleCard struct {
	*component.Component[ToggleProps]
	logger *slog.Logger
	rec    metrics.Recorder
}

// NewToggleCard creates the toggle card component.
func NewToggleCard(logger *slog.Logger, rec metrics.Recorder) *ToggleCard {
	c := &ToggleCard{
		Component: component.New[ToggleProps]("toggle"),
		logger:    logger,
		rec:       rec,
	}
	c.Bind(c)
	c.Action("toggle", c.transition((*hxhooks.Toggle).Toggle, "toggle"))
	c.Action("on", c.transition((*hxhooks.Toggle).SetTrue, "on"))
	c.Action("off", c.transition((*hxhooks.Toggle).SetFalse, "off"))
	return c
}

// Hydrate is a no-op; the props are the whole state.
func (c *ToggleCard) Hydrate(context.Context, *ToggleProps) error {
	return nil
}

// Render produces the card.
func (c *ToggleCard) Render(_ context.Context, p ToggleProps) templ.Component {
	status := "Notifications are off"
	if p.On {
		status = "Notifications are on"
	}
	target := func(a *component.Action) templ.Attributes {
		return a.TargetClosest(".card").Attrs()
	}
	return ui.Card("toggle-card", "Notifications",
		ui.Switch("Email me about new members", p.On, target(c.Call("toggle", p))),
		ui.Notice("info", status),
		ui.Group(
			ui.Button("Turn on", ui.Secondary, target(c.Call("on", p))),
			ui.Button("Turn off", ui.Ghost, target(c.Call("off", p))),
		),
	)
}

// transition adapts a Toggle operation into an action handler.
func (c *ToggleCard) transition(op func(*hxhooks.Toggle) bool, name string) component.Handler[ToggleProps] {
	return func(ctx context.Context, p ToggleProps, _ *http.Request) component.Result[ToggleProps] {
		t := hxhooks.NewToggle(p.On, func(v bool) {
			c.rec.IncTransition("toggle", name)
			c.logger.DebugContext(ctx, "toggle changed", logfields.Component(c.Name()), logfields.Action(name), slog.Bool("on", v))
		})
		p.On = op(t)
		return component.OK(p)
	}
}
