package hxhooks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewer() *User {
	return &User{ID: "1", Name: "Y", Email: "y@z", Role: RoleViewer}
}

func TestSessionUpdateUserMerges(t *testing.T) {
	s := NewSession(nil)
	s.SetUser(viewer())

	applied := s.UpdateUser(UserPatch{}.WithName("X"))
	require.True(t, applied)
	assert.Equal(t, &User{ID: "1", Name: "X", Email: "y@z", Role: RoleViewer}, s.User())
}

func TestSessionUpdateUserOverwritesID(t *testing.T) {
	s := NewSession(nil)
	s.SetUser(viewer())

	s.UpdateUser(UserPatch{}.WithID("2").WithRole(RoleAdmin))
	assert.Equal(t, "2", s.User().ID)
	assert.Equal(t, RoleAdmin, s.User().Role)
	assert.Equal(t, "Y", s.User().Name)
}

func TestSessionUpdateUserWithoutUserIsNoop(t *testing.T) {
	calls := 0
	s := NewSession(func(SessionState) { calls++ })
	s.SetError("boom")
	calls = 0

	applied := s.UpdateUser(UserPatch{}.WithName("X"))
	assert.False(t, applied)
	assert.Nil(t, s.User())
	assert.Equal(t, 0, calls)
	assert.Equal(t, "boom", s.State().Error)
}

func TestSessionClearUserKeepsLoading(t *testing.T) {
	s := NewSession(nil)
	s.SetUser(viewer())
	s.SetLoading(true)
	s.SetError("stale")

	s.ClearUser()
	st := s.State()
	assert.Nil(t, st.User)
	assert.Equal(t, "", st.Error)
	assert.True(t, st.Loading)
}

func TestSessionFlagsAreIndependent(t *testing.T) {
	s := NewSession(nil)
	s.SetError("offline")
	s.SetUser(viewer())
	s.SetLoading(true)

	st := s.State()
	assert.Equal(t, "offline", st.Error)
	assert.True(t, st.SignedIn())
	assert.True(t, st.Loading)

	s.SetUser(nil)
	assert.Equal(t, "offline", s.State().Error)
	assert.True(t, s.State().Loading)
}

func TestSessionSnapshotsAreCopies(t *testing.T) {
	var last SessionState
	s := NewSession(func(st SessionState) { last = st })
	u := viewer()
	s.SetUser(u)

	u.Name = "mutated"
	last.User.Name = "also mutated"
	s.User().Name = "again"

	assert.Equal(t, "Y", s.User().Name)
}

func TestLoadSession(t *testing.T) {
	st := SessionState{User: viewer(), Loading: true}
	s := LoadSession(st, nil)
	st.User.Name = "changed"

	assert.Equal(t, "Y", s.User().Name)
	assert.True(t, s.State().Loading)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"admin", RoleAdmin, false},
		{" Editor ", RoleEditor, false},
		{"VIEWER", RoleViewer, false},
		{"owner", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRole))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
