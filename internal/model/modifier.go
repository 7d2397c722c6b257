package model

import (
	"strings"
)

// Modifier is a bit set of declaration modifiers. Access bits are a disjoint
// subset (see AccessLevels); the remaining bits are independent flags.
type Modifier uint32

const (
	Public Modifier = 1 << iota
	Protected
	Internal
	Package
	Private
	Static
	Abstract
	Sealed
	Final
	Virtual
	New
	Override
	Readonly
	Const
	Volatile
	Event
	Async
	Extern
	Partial
	Unsafe
	Strictfp
	Transient
	Native
	Synchronized
	Default

	None Modifier = 0

	AccessLevels = Public | Protected | Internal | Package | Private
)

// modifierWords is ordered the way modifiers are written back out.
var modifierWords = []struct {
	word string
	mod  Modifier
}{
	{"public", Public},
	{"protected", Protected},
	{"internal", Internal},
	{"package", Package},
	{"private", Private},
	{"static", Static},
	{"sealed", Sealed},
	{"final", Final},
	{"virtual", Virtual},
	{"new", New},
	{"override", Override},
	{"abstract", Abstract},
	{"readonly", Readonly},
	{"const", Const},
	{"volatile", Volatile},
	{"event", Event},
	{"async", Async},
	{"extern", Extern},
	{"partial", Partial},
	{"unsafe", Unsafe},
	{"strictfp", Strictfp},
	{"transient", Transient},
	{"native", Native},
	{"synchronized", Synchronized},
	{"default", Default},
}

var modifierByWord = func() map[string]Modifier {
	m := make(map[string]Modifier, len(modifierWords))
	for _, w := range modifierWords {
		m[w.word] = w.mod
	}
	return m
}()

// ModifierWords returns every modifier keyword in canonical order.
func ModifierWords() []string {
	out := make([]string, 0, len(modifierWords))
	for _, w := range modifierWords {
		out = append(out, w.word)
	}
	return out
}

// ParseModifier maps a single keyword to its bit. Matching is case-sensitive,
// as in both source languages.
func ParseModifier(word string) (Modifier, bool) {
	m, ok := modifierByWord[word]
	return m, ok
}

// IsModifierWord reports whether word is a modifier keyword.
func IsModifierWord(word string) bool {
	_, ok := modifierByWord[word]
	return ok
}

// ParseModifiers ORs together every keyword found in text. Unknown words are
// ignored.
func ParseModifiers(text string) Modifier {
	var mod Modifier
	for _, w := range strings.Fields(text) {
		mod |= modifierByWord[w]
	}
	return mod
}

func (m Modifier) Has(flag Modifier) bool { return m&flag == flag && flag != None }

// Access returns only the access-level bits.
func (m Modifier) Access() Modifier { return m & AccessLevels }

// WithDefaultAccess adds def's access bits when m carries none of its own.
func (m Modifier) WithDefaultAccess(def Modifier) Modifier {
	if m.Access() != None {
		return m
	}
	return m | def.Access()
}

func (m Modifier) String() string {
	words := make([]string, 0, 4)
	for _, w := range modifierWords {
		if m&w.mod != 0 {
			words = append(words, w.word)
		}
	}
	return strings.Join(words, " ")
}

func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Modifier) UnmarshalText(text []byte) error {
	*m = ParseModifiers(string(text))
	return nil
}
