package demo

import (
	"testing"

	hxhooks "github.com/pthm/hxhooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(users []hxhooks.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestMemberIDIsStable(t *testing.T) {
	assert.Equal(t, MemberID("ada@example.com"), MemberID("ADA@example.com"))
	assert.NotEqual(t, MemberID("ada@example.com"), MemberID("alan@example.com"))
}

func TestDirectorySearch(t *testing.T) {
	dir := NewDirectory(2, SeedMembers()...)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty", "   ", nil},
		{"substring of name", "hop", []string{"Grace Hopper"}},
		{"substring of email", "katherine@", []string{"Katherine Johnson"}},
		{"case insensitive", "TURING", []string{"Alan Turing"}},
		{"typo", "dijkstar", []string{"Edsger Dijkstra"}},
		{"short query skips fuzzy", "zz", nil},
		{"too far", "xylophone", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dir.Search(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestDirectorySubstringRanksFirst(t *testing.T) {
	dir := NewDirectory(2, SeedMembers()...)

	got := names(dir.Search("ken"))
	require.NotEmpty(t, got)
	assert.Equal(t, "Ken Thompson", got[0])
}

func TestDirectoryGet(t *testing.T) {
	dir := NewDirectory(2, SeedMembers()...)

	u, ok := dir.Get(MemberID("margaret@example.com"))
	require.True(t, ok)
	assert.Equal(t, "Margaret Hamilton", u.Name)
	assert.Equal(t, hxhooks.RoleAdmin, u.Role)

	_, ok = dir.Get("missing")
	assert.False(t, ok)
	assert.Len(t, dir.All(), 10)
}
