// Package demo is a small app built from the state hooks: a notifications
// switch, a signup form, a debounced member search and a profile card.
package demo

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/jonboulle/clockwork"
	hxhooks "github.com/pthm/hxhooks"
	"github.com/pthm/hxhooks/internal/logfields"
	"github.com/pthm/hxhooks/internal/metrics"
	"github.com/pthm/hxhooks/internal/ui"
	"github.com/pthm/hxhooks/lib/component"
)

// Options configures a Demo.
type Options struct {
	Debounce     time.Duration
	MaxDistance  int
	PollInterval time.Duration
	OwnerTTL     time.Duration

	// Clock drives debouncing and owner expiry. Nil means the real clock.
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Recorder metrics.Recorder
	Members  []hxhooks.User
}

// Demo owns the demo components and serves the page that hosts them.
type Demo struct {
	Toggle  *ToggleCard
	Signup  *SignupForm
	Search  *MemberSearch
	Profile *ProfileCard

	Directory *Directory
	Owners    *Owners

	logger *slog.Logger
}

// New builds the demo components. Register them before serving.
func New(opts Options) *Demo {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Members == nil {
		opts.Members = SeedMembers()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}

	dir := NewDirectory(opts.MaxDistance, opts.Members...)
	owners := NewOwners(opts.Debounce, opts.OwnerTTL, opts.Clock, opts.Logger, opts.Recorder)
	return &Demo{
		Toggle:    NewToggleCard(opts.Logger, opts.Recorder),
		Signup:    NewSignupForm(opts.Logger, opts.Recorder),
		Search:    NewMemberSearch(dir, owners, opts.PollInterval, opts.Logger, opts.Recorder),
		Profile:   NewProfileCard(dir, opts.Logger, opts.Recorder),
		Directory: dir,
		Owners:    owners,
		logger:    opts.Logger,
	}
}

// Register mounts every demo component on reg.
func (d *Demo) Register(reg *component.Registry) {
	reg.Add(d.Toggle, d.Signup, d.Search, d.Profile)
}

// Run expires idle search owners until ctx is done.
func (d *Demo) Run(ctx context.Context, interval time.Duration) {
	d.Owners.Run(ctx, interval)
}

// Close tears down every search debouncer.
func (d *Demo) Close() {
	d.Owners.Close()
}

// ServeHTTP renders the page with each component in its initial state.
func (d *Demo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	cards := make([]templ.Component, 0, 4)
	for _, mount := range []func(context.Context) (templ.Component, error){
		func(ctx context.Context) (templ.Component, error) { return initial(ctx, d.Toggle, ToggleProps{}) },
		func(ctx context.Context) (templ.Component, error) { return initial(ctx, d.Signup, InitialSignup()) },
		func(ctx context.Context) (templ.Component, error) { return initial(ctx, d.Search, SearchProps{}) },
		func(ctx context.Context) (templ.Component, error) { return initial(ctx, d.Profile, ProfileProps{}) },
	} {
		c, err := mount(ctx)
		if err != nil {
			d.logger.ErrorContext(ctx, "render page", logfields.Path(r.URL.Path), logfields.Error(err))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		cards = append(cards, c)
	}

	var buf bytes.Buffer
	page := ui.Layout("hxhooks demo", ui.DefaultTheme, cards...)
	if err := page.Render(ctx, &buf); err != nil {
		d.logger.ErrorContext(ctx, "render page", logfields.Path(r.URL.Path), logfields.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func initial[P any](ctx context.Context, lc component.Lifecycle[P], props P) (templ.Component, error) {
	if err := lc.Hydrate(ctx, &props); err != nil {
		return nil, err
	}
	return lc.Render(ctx, props), nil
}
