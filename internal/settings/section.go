// internal/settings/section.go
//
// Enum-keyed document sections.
//
// Context
// -------
// A section maps vocabulary names to values, e.g.
//
//	settings:
//	  block-prices:
//	    IRON_BLOCK: 75
//	    diamond block: 1000
//
// Loading a section is two explicit phases:
//
//  1. seed   – every constant with no user key resolving to it gets a
//     defaults-layer entry under its canonical name;
//  2. parse  – every user key is resolved against the vocabulary, then any
//     constant still missing is filled from the defaults layer.
//
// Notes
// -----
//   • An unresolvable key is logged and skipped; it never fails the load.
//   • A key with a null value counts as unset.
//   • A value of the wrong type is logged and replaced by the default.
//   • Two user keys resolving to one constant: the later key (in sorted
//     order) wins, with a warning.
package settings

import (
	"fmt"

	"github.com/yanizio/ftop/internal/worth"
)

type section[K ~int, V any] struct {
	path   string
	vocab  *worth.Vocabulary[K]
	def    func(K) V
	coerce func(any) (V, bool)
	kind   string // expected value type, for warnings
}

func (s section[K, V]) key(name string) string { return s.path + delim + name }

// slots maps each constant to the user key resolving to it.  Keys holding
// null come back separately: they count as unset, and their default is
// seeded under the user's own spelling so a migration fills them in place.
func (s section[K, V]) slots(doc *Document) (set, null map[K]string) {
	set, null = make(map[K]string), make(map[K]string)
	for _, name := range doc.SectionKeys(s.path) {
		k, err := s.vocab.Parse(name)
		if err != nil {
			continue
		}
		if doc.IsNull(s.key(name)) {
			if _, ok := null[k]; !ok {
				null[k] = name
			}
			continue
		}
		set[k] = name
	}
	return set, null
}

// defaultKey is the path holding k's seeded default.
func (s section[K, V]) defaultKey(null map[K]string, k K) string {
	if name, ok := null[k]; ok {
		return s.key(name)
	}
	return s.key(s.vocab.String(k))
}

// seed records a default for every constant the user has not set.
func (s section[K, V]) seed(doc *Document) {
	set, null := s.slots(doc)
	for _, k := range s.vocab.Values() {
		if _, ok := set[k]; ok {
			continue
		}
		doc.EnsureDefault(s.defaultKey(null, k), s.def(k))
	}
}

// parse resolves the section into a map covering every constant that has
// either a user value or a seeded default.
func (s section[K, V]) parse(doc *Document, rep *report) map[K]V {
	out := make(map[K]V, s.vocab.Len())

	if doc.IsScalar(s.path) {
		rep.warn(s.path, fmt.Sprintf("expected a section of %s keys, using defaults", s.vocab.Name()))
	}

	from := make(map[K]string)
	for _, name := range doc.SectionKeys(s.path) {
		k, err := s.vocab.Parse(name)
		if err != nil {
			rep.warn(s.key(name), err.Error())
			continue
		}
		if doc.IsNull(s.key(name)) {
			continue
		}
		if prev, dup := from[k]; dup {
			rep.warn(s.key(name), fmt.Sprintf("duplicate %s %s overrides key %q", s.vocab.Name(), s.vocab.String(k), prev))
		}
		from[k] = name

		raw, _ := doc.Get(s.key(name))
		v, ok := s.coerce(raw)
		if !ok {
			v = s.def(k)
			rep.warn(s.key(name), fmt.Sprintf("expected a %s, using default %v", s.kind, v))
		}
		out[k] = v
	}

	_, null := s.slots(doc)
	for _, k := range s.vocab.Values() {
		if _, ok := out[k]; ok {
			continue
		}
		raw, ok := doc.Default(s.defaultKey(null, k))
		if !ok {
			continue
		}
		if v, ok := s.coerce(raw); ok {
			out[k] = v
		}
	}
	return out
}
