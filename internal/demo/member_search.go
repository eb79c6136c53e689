package demo

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/internal/ui"
	"github.com/pthm/hxhooks/lib/component"
)

// SearchProps identifies the owner whose debouncer holds the query.
// Results and the settled query are looked up on every request.
type SearchProps struct {
	Owner string `msgpack:"o"`
	Query string `msgpack:"q"`

	Settled string         `msgpack:"-"`
	Pending bool           `msgpack:"-"`
	Results []hxhooks.User `msgpack:"-"`

	fragment bool
}

// MemberSearch is a search box whose query is debounced server-side.
// Keystrokes update the owner's Debouncer and return no content; the
// results panel polls and renders the settled query.
type MemberSearch struct {
	*component.Component[SearchProps]
	dir    *Directory
	owners *Owners
	poll   time.Duration
	logger *slog.Logger
	rec    metrics.Recorder
}

// NewMemberSearch creates the member search component.
func NewMemberSearch(dir *Directory, owners *Owners, poll time.Duration, logger *slog.Logger, rec metrics.Recorder) *MemberSearch {
	c := &MemberSearch{
		Component: component.New[SearchProps]("search"),
		dir:       dir,
		owners:    owners,
		poll:      poll,
		logger:    logger,
		rec:       rec,
	}
	c.Bind(c)
	c.Action("type", c.handleType)
	c.Action("search", c.handleSearch)
	c.Action("results", c.handleResults).Method(http.MethodGet)
	c.Action("close", c.handleClose)
	return c
}

// Hydrate assigns an owner to new searches and loads the settled query.
func (c *MemberSearch) Hydrate(_ context.Context, p *SearchProps) error {
	if p.Owner == "" {
		p.Owner = uuid.NewString()
	}
	if deb, ok := c.owners.Lookup(p.Owner); ok {
		p.Settled = deb.Value()
		p.Pending = deb.Pending()
	} else {
		p.Settled = p.Query
	}
	p.Results = c.dir.Search(p.Settled)
	return nil
}

// Render produces the card, or only the results panel for polls.
func (c *MemberSearch) Render(_ context.Context, p SearchProps) templ.Component {
	if p.fragment {
		return c.results(p)
	}
	input := c.Call("type", p).Trigger("input changed").SwapNone().Attrs()
	input["placeholder"] = "Search by name or email"
	input["autocomplete"] = "off"
	enter := c.Call("search", p).OnKeyup("[key=='Enter']").Include("#field-q").Target("#search-results").Attrs()
	return ui.Card("search-card", "Member search",
		ui.Element("div", enter,
			ui.Field("Search", "q", "search", p.Query, "", input),
		),
		c.results(p),
		ui.Button("Clear", ui.Ghost, c.Call("close", p).TargetClosest(".card").Attrs()),
	)
}

func (c *MemberSearch) results(p SearchProps) templ.Component {
	attrs := c.Call("results", p).Every(c.poll).TargetThis().Attrs()
	attrs["id"] = "search-results"
	attrs["class"] = "search-results"

	empty := "Start typing to search"
	if p.Settled != "" {
		empty = `No members match "` + p.Settled + `"`
	}
	status := ""
	if p.Pending {
		status = "Searching…"
	}
	return ui.Element("div", attrs,
		ui.Notice("muted", status),
		hxhooks.RenderList(p.Results, memberRow, empty),
	)
}

func memberRow(u hxhooks.User) templ.Component {
	return ui.Element("div", templ.Attributes{"class": "member"},
		ui.Avatar(u.Name),
		ui.Element("span", templ.Attributes{"class": "member-name"}, ui.Text(u.Name)),
		ui.Element("span", templ.Attributes{"class": "member-email"}, ui.Text(u.Email)),
		ui.RoleBadge(u.Role),
	)
}

// handleType feeds a keystroke into the owner's debouncer.
func (c *MemberSearch) handleType(ctx context.Context, p SearchProps, r *http.Request) component.Result[SearchProps] {
	deb, err := c.owners.Acquire(p.Owner)
	if err != nil {
		return component.Err(p, err)
	}
	q := strings.TrimSpace(r.FormValue("q"))
	deb.Update(q)
	c.rec.IncDebounce(metrics.DebounceScheduled)
	c.logger.DebugContext(ctx, "search query updated", logfields.Owner(p.Owner), logfields.Query(q))
	return component.Skip[SearchProps]().Status(http.StatusNoContent)
}

// handleSearch settles the posted query at once and renders the results.
func (c *MemberSearch) handleSearch(ctx context.Context, p SearchProps, r *http.Request) component.Result[SearchProps] {
	deb, err := c.owners.Acquire(p.Owner)
	if err != nil {
		return component.Err(p, err)
	}
	q := strings.TrimSpace(r.FormValue("q"))
	deb.Update(q)
	if deb.Flush() {
		c.rec.IncDebounce(metrics.DebounceFlushed)
	}
	p.Query, p.Settled, p.Pending = q, deb.Value(), deb.Pending()
	p.Results = c.dir.Search(p.Settled)
	p.fragment = true
	c.logger.InfoContext(ctx, "member search", logfields.Owner(p.Owner), logfields.Query(p.Settled), logfields.Results(len(p.Results)))
	return component.OK(p)
}

// handleResults renders the panel for the settled query.
func (c *MemberSearch) handleResults(_ context.Context, p SearchProps, _ *http.Request) component.Result[SearchProps] {
	p.fragment = true
	return component.OK(p)
}

// handleClose releases the owner's debouncer and starts a fresh search.
func (c *MemberSearch) handleClose(ctx context.Context, p SearchProps, _ *http.Request) component.Result[SearchProps] {
	if c.owners.Release(p.Owner) {
		c.logger.DebugContext(ctx, "search closed", logfields.Owner(p.Owner))
	}
	next := SearchProps{Owner: uuid.NewString()}
	return component.OK(next).Flash(component.FlashInfo, "Search cleared")
}
