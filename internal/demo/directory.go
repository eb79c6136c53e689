package demo

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	hxhooks "github.com/pthm/hxhooks"
)

// memberNamespace derives stable member ids from email addresses.
var memberNamespace = uuid.MustParse("8f1b6c1e-7a52-4d0e-9a3c-2b4f51d3c0aa")

// MemberID returns the stable id of the member with email.
func MemberID(email string) string {
	return uuid.NewSHA1(memberNamespace, []byte(strings.ToLower(email))).String()
}

// SeedMembers returns the demo directory contents.
func SeedMembers() []hxhooks.User {
	seed := []struct {
		name, email string
		role        hxhooks.Role
	}{
		{"Ada Lovelace", "ada@example.com", hxhooks.RoleAdmin},
		{"Grace Hopper", "grace@example.com", hxhooks.RoleEditor},
		{"Alan Turing", "alan@example.com", hxhooks.RoleEditor},
		{"Katherine Johnson", "katherine@example.com", hxhooks.RoleViewer},
		{"Edsger Dijkstra", "edsger@example.com", hxhooks.RoleViewer},
		{"Barbara Liskov", "barbara@example.com", hxhooks.RoleEditor},
		{"Donald Knuth", "donald@example.com", hxhooks.RoleViewer},
		{"Margaret Hamilton", "margaret@example.com", hxhooks.RoleAdmin},
		{"Ken Thompson", "ken@example.com", hxhooks.RoleViewer},
		{"Radia Perlman", "radia@example.com", hxhooks.RoleViewer},
	}
	users := make([]hxhooks.User, len(seed))
	for i, s := range seed {
		users[i] = hxhooks.User{ID: MemberID(s.email), Name: s.name, Email: s.email, Role: s.role}
	}
	return users
}

// Directory is a read-only, in-memory member list with fuzzy search.
type Directory struct {
	members     []hxhooks.User
	maxDistance int
}

// NewDirectory creates a directory. maxDistance bounds the edit distance
// between the query and a name or email word.
func NewDirectory(maxDistance int, members ...hxhooks.User) *Directory {
	return &Directory{members: append([]hxhooks.User(nil), members...), maxDistance: maxDistance}
}

// All returns every member in directory order.
func (d *Directory) All() []hxhooks.User {
	return append([]hxhooks.User(nil), d.members...)
}

// Get returns the member with id.
func (d *Directory) Get(id string) (hxhooks.User, bool) {
	for _, m := range d.members {
		if m.ID == id {
			return m, true
		}
	}
	return hxhooks.User{}, false
}

// Search returns members matching query, best match first. Substring
// matches rank ahead of fuzzy ones; ties keep directory order. Queries
// shorter than three runes only match by substring.
func (d *Directory) Search(query string) []hxhooks.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	type hit struct {
		user  hxhooks.User
		score int
	}
	var hits []hit
	for _, m := range d.members {
		if score, ok := d.score(q, m); ok {
			hits = append(hits, hit{m, score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]hxhooks.User, len(hits))
	for i, h := range hits {
		out[i] = h.user
	}
	return out
}

func (d *Directory) score(q string, m hxhooks.User) (int, bool) {
	name := strings.ToLower(m.Name)
	if strings.Contains(name, q) || strings.Contains(strings.ToLower(m.Email), q) {
		return 0, true
	}
	if len([]rune(q)) < 3 {
		return 0, false
	}
	local, _, _ := strings.Cut(strings.ToLower(m.Email), "@")
	best := -1
	for _, word := range append(strings.Fields(name), local) {
		dist := levenshtein.ComputeDistance(q, word)
		if best < 0 || dist < best {
			best = dist
		}
	}
	if best < 0 || best > d.maxDistance {
		return 0, false
	}
	// Fuzzy hits rank after every substring hit.
	return best + 1, true
}
