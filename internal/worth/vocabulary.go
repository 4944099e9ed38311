// internal/worth/vocabulary.go
//
// Closed vocabularies used as keys in the settings document.
//
// Context
// -------
// Every enum-keyed section of config.yml (`enabled`, `detailed`,
// `perform-recalculate`, `bypass-recalculate-delay`, `spawner-prices`,
// `block-prices`) is keyed by the name of a constant from one of the
// vocabularies in this package.  A Vocabulary knows its constants in
// declaration order, renders them by name, and parses loosely-typed user
// keys back into constants.
//
// Notes
// -----
//   • Names are matched after Normalize, so `iron block` and `Iron_Block`
//     both resolve to IRON_BLOCK.
//   • Each names table is pinned to its constant count at compile time;
//     adding a constant without a name (or vice versa) breaks the build.
//   • Oxford commas, two spaces after periods.
package worth

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWord       = regexp.MustCompile(`\W`)
)

// Normalize upper-cases raw, collapses whitespace runs into “_”, and drops
// every remaining non-word character.
func Normalize(raw string) string {
	s := strings.ToUpper(raw)
	s = whitespaceRun.ReplaceAllString(s, "_")
	return nonWord.ReplaceAllString(s, "")
}

// UnknownNameError reports a key that matches no constant of a vocabulary.
type UnknownNameError struct {
	Vocabulary string
	Name       string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Vocabulary, e.Name)
}

// Vocabulary is the closed set of constants of one key type.  K values are
// dense, starting at zero, in the order of the names table.
type Vocabulary[K ~int] struct {
	name   string
	names  []string
	byName map[string]K
}

func newVocabulary[K ~int](name string, names []string) *Vocabulary[K] {
	v := &Vocabulary[K]{
		name:   name,
		names:  names,
		byName: make(map[string]K, len(names)),
	}
	for i, n := range names {
		v.byName[n] = K(i)
	}
	return v
}

// Name is the vocabulary's type name, used in warnings.
func (v *Vocabulary[K]) Name() string { return v.name }

// Len returns the number of constants.
func (v *Vocabulary[K]) Len() int { return len(v.names) }

// Values returns every constant in declaration order.
func (v *Vocabulary[K]) Values() []K {
	out := make([]K, len(v.names))
	for i := range v.names {
		out[i] = K(i)
	}
	return out
}

// Valid reports whether k is one of the vocabulary's constants.
func (v *Vocabulary[K]) Valid(k K) bool {
	return k >= 0 && int(k) < len(v.names)
}

// String renders k by its canonical name.
func (v *Vocabulary[K]) String(k K) string {
	if !v.Valid(k) {
		return fmt.Sprintf("%s(%d)", v.name, int(k))
	}
	return v.names[k]
}

// Parse resolves a user-supplied key.  The error is always an
// *UnknownNameError carrying the raw key.
func (v *Vocabulary[K]) Parse(raw string) (K, error) {
	if k, ok := v.byName[Normalize(raw)]; ok {
		return k, nil
	}
	return 0, &UnknownNameError{Vocabulary: v.name, Name: raw}
}
