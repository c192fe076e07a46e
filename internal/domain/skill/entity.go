package skill

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Set is an unordered, deduplicated collection of skill names. Skills are
// identified by name.
type Set map[string]struct{}

func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s Set) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

func (s Set) Has(name string) bool {
	_, ok := s[strings.TrimSpace(name)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for n := range s {
		if _, ok := other[n]; ok {
			out[n] = struct{}{}
		}
	}
	return out
}

// Difference returns the names in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for n := range s {
		if _, ok := other[n]; !ok {
			out[n] = struct{}{}
		}
	}
	return out
}

func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *Set) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	*s = NewSet(names...)
	return nil
}
