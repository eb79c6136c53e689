package hxhooks

import (
	"fmt"
	"strings"
)

// Role is a user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists every valid role, most privileged first.
var Roles = []Role{RoleAdmin, RoleEditor, RoleViewer}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// ParseRole parses a role name, ignoring case and surrounding space.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// User is the current user of a session.
type User struct {
	ID    string `msgpack:"id"`
	Name  string `msgpack:"n"`
	Email string `msgpack:"e"`
	Role  Role   `msgpack:"r"`
}

// UserPatch holds the fields to overwrite in a shallow merge. Nil fields are
// left untouched. ID is not protected and is overwritten when set.
type UserPatch struct {
	ID    *string
	Name  *string
	Email *string
	Role  *Role
}

// WithID returns a copy of p that sets the user ID.
func (p UserPatch) WithID(id string) UserPatch {
	p.ID = &id
	return p
}

// WithName returns a copy of p that sets the name.
func (p UserPatch) WithName(name string) UserPatch {
	p.Name = &name
	return p
}

// WithEmail returns a copy of p that sets the email.
func (p UserPatch) WithEmail(email string) UserPatch {
	p.Email = &email
	return p
}

// WithRole returns a copy of p that sets the role.
func (p UserPatch) WithRole(role Role) UserPatch {
	p.Role = &role
	return p
}

// Merge returns u with the set fields of p applied.
func (u User) Merge(p UserPatch) User {
	if p.ID != nil {
		u.ID = *p.ID
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

// SessionState is the snapshot of a Session. A nil User means nobody is
// signed in; an empty Error means no error. Error is independent of User
// and Loading.
type SessionState struct {
	User    *User  `msgpack:"u,omitempty"`
	Loading bool   `msgpack:"l,omitempty"`
	Error   string `msgpack:"x,omitempty"`
}

// SignedIn reports whether the snapshot holds a user.
func (s SessionState) SignedIn() bool {
	return s.User != nil
}

func (s SessionState) clone() SessionState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (s SessionState) withUser(u *User) SessionState {
	if u != nil {
		c := *u
		u = &c
	}
	s.User = u
	return s
}

func (s SessionState) withPatch(p UserPatch) (SessionState, bool) {
	if s.User == nil {
		return s, false
	}
	merged := s.User.Merge(p)
	s.User = &merged
	return s, true
}

func (s SessionState) cleared() SessionState {
	s.User = nil
	s.Error = ""
	return s
}

// Session holds the optional current user plus loading and error flags.
// It performs no I/O; Loading and Error are set by the owner.
type Session struct {
	state    SessionState
	onChange func(SessionState)
}

// NewSession creates a signed-out session. onChange may be nil.
func NewSession(onChange func(SessionState)) *Session {
	return &Session{onChange: onChange}
}

// LoadSession restores a session from a snapshot taken earlier with State.
func LoadSession(state SessionState, onChange func(SessionState)) *Session {
	return &Session{state: state.clone(), onChange: onChange}
}

// State returns a copy of the current snapshot.
func (s *Session) State() SessionState {
	return s.state.clone()
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *User {
	return s.state.clone().User
}

// SetUser replaces the user wholesale. A nil u signs the user out without
// touching Error.
func (s *Session) SetUser(u *User) {
	s.apply(s.state.withUser(u))
}

// UpdateUser shallow-merges p over the current user. Without a user it does
// nothing: no error and no notification. The result reports whether the
// patch was applied.
func (s *Session) UpdateUser(p UserPatch) bool {
	next, ok := s.state.withPatch(p)
	if !ok {
		return false
	}
	s.apply(next)
	return true
}

// ClearUser removes the user and the error. Loading is left as is.
func (s *Session) ClearUser() {
	s.apply(s.state.cleared())
}

// SetLoading sets the loading flag.
func (s *Session) SetLoading(loading bool) {
	next := s.state
	next.Loading = loading
	s.apply(next)
}

// SetError sets the error message; "" clears it.
func (s *Session) SetError(msg string) {
	next := s.state
	next.Error = msg
	s.apply(next)
}

func (s *Session) apply(next SessionState) {
	s.state = next
	if s.onChange != nil {
		s.onChange(next.clone())
	}
}
