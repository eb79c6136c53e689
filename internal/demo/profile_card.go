package demo

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/internal/ui"
	"github.com/pthm/hxhooks/lib/component"
)

// ProfileProps carries the session snapshot and whether the edit dialog is
// open. The snapshot holds an email address, so the component encrypts
// its props.
type ProfileProps struct {
	Session hxhooks.SessionState `msgpack:"s"`
	Editing bool                 `msgpack:"ed,omitempty"`
}

// ProfileCard signs a directory member in and edits their profile through
// a Session.
type ProfileCard struct {
	*component.Component[ProfileProps]
	dir    *Directory
	logger *slog.Logger
	rec    metrics.Recorder
}

// NewProfileCard creates the profile card component.
func NewProfileCard(dir *Directory, logger *slog.Logger, rec metrics.Recorder) *ProfileCard {
	c := &ProfileCard{
		Component: component.New[ProfileProps]("profile").Sensitive(),
		dir:       dir,
		logger:    logger,
		rec:       rec,
	}
	c.Bind(c)
	c.Action("login", c.handleLogin)
	c.Action("logout", c.handleLogout)
	c.Action("edit", c.handleEdit)
	c.Action("rename", c.handleRename)
	c.Action("promote", c.handlePromote)
	return c
}

func (c *ProfileCard) Hydrate(context.Context, *ProfileProps) error {
	return nil
}

// Render produces the card.
func (c *ProfileCard) Render(_ context.Context, p ProfileProps) templ.Component {
	s := p.Session
	if !s.SignedIn() {
		login := c.Call("login", p).TargetClosest(".card").Attrs()
		return ui.Card("profile-card", "Profile",
			ui.Notice("error", s.Error),
			ui.Element("form", login,
				ui.Element("label", templ.Attributes{"for": "profile-user"}, ui.Text("Member")),
				ui.Element("select", templ.Attributes{"id": "profile-user", "name": "user"}, c.memberOptions()...),
				ui.Button("Sign in", ui.Primary, templ.Attributes{"type": "submit"}),
			),
		)
	}

	u := s.User
	target := func(a *component.Action) templ.Attributes {
		return a.TargetClosest(".card").Attrs()
	}
	return ui.Card("profile-card", "Profile",
		ui.Notice("error", s.Error),
		ui.Element("div", templ.Attributes{"class": "member"},
			ui.Avatar(u.Name),
			ui.Element("span", templ.Attributes{"class": "member-name"}, ui.Text(u.Name)),
			ui.Element("span", templ.Attributes{"class": "member-email"}, ui.Text(u.Email)),
			ui.RoleBadge(u.Role),
		),
		ui.Group(
			ui.Button("Edit profile", ui.Secondary, target(c.Call("edit", p))),
			ui.Button("Sign out", ui.Ghost, target(c.Call("logout", p).Confirm("Sign out?"))),
		),
		ui.Modal("profile-edit", "Edit profile", p.Editing, c.editor(p), target(c.Call("edit", p))),
	)
}

func (c *ProfileCard) editor(p ProfileProps) templ.Component {
	u := p.Session.User
	rename := c.Call("rename", p).TargetClosest(".card").Attrs()
	roles := make([]templ.Component, 0, len(hxhooks.Roles))
	for _, r := range hxhooks.Roles {
		v := ui.Secondary
		if r == u.Role {
			v = ui.Primary
		}
		promote := c.Call("promote", p).Vals(map[string]any{"role": string(r)}).TargetClosest(".card").Attrs()
		roles = append(roles, ui.Button(ui.RoleLabel(r), v, promote))
	}
	return ui.Group(
		ui.Element("form", rename,
			ui.Field("Display name", "name", "text", u.Name, "", nil),
			ui.Button("Save", ui.Primary, templ.Attributes{"type": "submit"}),
		),
		ui.Element("div", templ.Attributes{"class": "roles"}, roles...),
	)
}

func (c *ProfileCard) memberOptions() []templ.Component {
	members := c.dir.All()
	opts := make([]templ.Component, len(members))
	for i, m := range members {
		opts[i] = ui.Element("option", templ.Attributes{"value": m.ID}, ui.Text(m.Name))
	}
	return opts
}

func (c *ProfileCard) session(ctx context.Context, p ProfileProps, op string) *hxhooks.Session {
	return hxhooks.LoadSession(p.Session, func(s hxhooks.SessionState) {
		c.rec.IncTransition("session", op)
		attrs := []any{logfields.Component(c.Name()), logfields.Action(op), slog.Bool("signed_in", s.SignedIn())}
		if s.User != nil {
			attrs = append(attrs, logfields.UserID(s.User.ID))
		}
		c.logger.DebugContext(ctx, "session changed", attrs...)
	})
}

// handleLogin signs in the selected member.
func (c *ProfileCard) handleLogin(ctx context.Context, p ProfileProps, r *http.Request) component.Result[ProfileProps] {
	sess := c.session(ctx, p, "login")
	sess.SetLoading(true)
	u, ok := c.dir.Get(r.FormValue("user"))
	if !ok {
		sess.SetError("No such member")
		sess.SetLoading(false)
		p.Session = sess.State()
		return component.Invalid(p)
	}
	sess.SetUser(&u)
	sess.SetError("")
	sess.SetLoading(false)
	p.Session = sess.State()
	c.logger.InfoContext(ctx, "member signed in", logfields.UserID(u.ID))
	return component.OK(p).
		Flash(component.FlashSuccess, "Signed in as "+u.Name).
		Trigger("session:changed", map[string]any{"id": u.ID})
}

// handleLogout clears the session.
func (c *ProfileCard) handleLogout(ctx context.Context, p ProfileProps, _ *http.Request) component.Result[ProfileProps] {
	sess := c.session(ctx, p, "logout")
	sess.ClearUser()
	p.Session = sess.State()
	p.Editing = false
	return component.OK(p).Trigger("session:changed")
}

// handleEdit opens or closes the edit dialog.
func (c *ProfileCard) handleEdit(_ context.Context, p ProfileProps, _ *http.Request) component.Result[ProfileProps] {
	if !p.Session.SignedIn() {
		return component.OK(p).Flash(component.FlashInfo, "Sign in first")
	}
	p.Editing = hxhooks.NewToggle(p.Editing, nil).Toggle()
	return component.OK(p)
}

// handleRename changes the display name of the signed-in member.
func (c *ProfileCard) handleRename(ctx context.Context, p ProfileProps, r *http.Request) component.Result[ProfileProps] {
	name := strings.TrimSpace(r.FormValue("name"))
	if err := hxhooks.RequireField("name", name); err != nil {
		return component.Err(p, err)
	}
	sess := c.session(ctx, p, "rename")
	if !sess.UpdateUser(hxhooks.UserPatch{}.WithName(name)) {
		return component.OK(p).Flash(component.FlashInfo, "Sign in first")
	}
	p.Session = sess.State()
	p.Editing = false
	return component.OK(p).Flash(component.FlashSuccess, "Profile updated")
}

// handlePromote changes the role of the signed-in member.
func (c *ProfileCard) handlePromote(ctx context.Context, p ProfileProps, r *http.Request) component.Result[ProfileProps] {
	sess := c.session(ctx, p, "promote")
	role, err := hxhooks.ParseRole(r.FormValue("role"))
	if err != nil {
		c.logger.InfoContext(ctx, "role rejected", logfields.Error(err))
		sess.SetError("Unknown role " + r.FormValue("role"))
		p.Session = sess.State()
		return component.Invalid(p)
	}
	if !sess.UpdateUser(hxhooks.UserPatch{}.WithRole(role)) {
		return component.OK(p).Flash(component.FlashInfo, "Sign in first")
	}
	sess.SetError("")
	p.Session = sess.State()
	return component.OK(p).Flash(component.FlashSuccess, "Role set to "+ui.RoleLabel(role))
}
