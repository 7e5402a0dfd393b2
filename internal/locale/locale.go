// Package locale detects locales that are configured on the host but missing
// from the system locale database, and computes the repair actions needed to
// make them available.
package locale

import (
	"sort"
	"strings"
)

// Identifier is a locale identifier in canonical form, e.g. "de_at.utf8".
// Canonical form is what all comparisons use; the original spelling of a
// configured locale is kept separately where it matters (system defaults).
type Identifier string

// Canonicalize normalizes a raw locale token for comparison: one leading and
// one trailing double-quote are stripped, the result is lowercased, and every
// "utf-8" becomes "utf8". Applying it twice yields the same result.
func Canonicalize(raw string) Identifier {
	s := strings.TrimSuffix(raw, `"`)
	s = strings.TrimPrefix(s, `"`)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "utf-8", "utf8")
	return Identifier(s)
}

// IsSpecial reports whether id is the C or POSIX locale. These are always
// present and never considered for repair.
func IsSpecial(id Identifier) bool {
	return id == "c" || id == "posix"
}

// Set is an ordered collection of canonical identifiers with constant-time
// membership tests.
type Set struct {
	ids  []Identifier
	seen map[Identifier]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[Identifier]struct{})}
}

// Add canonicalizes raw and inserts it unless blank or already present.
func (s *Set) Add(raw string) {
	id := Canonicalize(raw)
	if id == "" {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Contains reports whether the canonical form of id is in the set.
func (s *Set) Contains(id Identifier) bool {
	_, ok := s.seen[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s *Set) Len() int {
	return len(s.ids)
}

// Identifiers returns the set contents sorted lexically.
func (s *Set) Identifiers() []Identifier {
	out := make([]Identifier, len(s.ids))
	copy(out, s.ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WithoutSpecial returns the sorted set contents with C and POSIX removed.
func (s *Set) WithoutSpecial() []Identifier {
	var out []Identifier
	for _, id := range s.Identifiers() {
		if IsSpecial(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Diff returns the elements of configured (special locales removed) that have
// no canonical match in available, preserving configured's order.
func Diff(configured *Set, available *Set) []Identifier {
	var missing []Identifier
	for _, id := range configured.WithoutSpecial() {
		if !available.Contains(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
