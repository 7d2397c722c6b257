package relation

import (
	"fmt"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// Kind is the type of edge between two classes.
type Kind int

const (
	Dependency Kind = iota
	Association
	Aggregation
	Composition
	Generalization
	Realization
	Nested
)

var kindNames = [...]string{
	Dependency:     "dependency",
	Association:    "association",
	Aggregation:    "aggregation",
	Composition:    "composition",
	Generalization: "generalization",
	Realization:    "realization",
	Nested:         "nested",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Dependency, Association, Aggregation, Composition, Generalization, Realization, Nested}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// strength ranks the usage kinds; a stronger kind implies every weaker one
// for the same ordered pair. Structural kinds rank zero and never imply or
// get implied by anything.
func (k Kind) strength() int {
	switch k {
	case Dependency:
		return 1
	case Association:
		return 2
	case Aggregation:
		return 3
	case Composition:
		return 4
	default:
		return 0
	}
}

// Relation is a directed edge. From and To are compared by identity, so two
// classes with the same name in different scopes stay distinct.
type Relation struct {
	From *model.Class
	To   *model.Class
	Kind Kind
}

func (r Relation) String() string {
	return fmt.Sprintf("%s(%s -> %s)", r.Kind, r.From.QualifiedName(), r.To.QualifiedName())
}

type pair struct {
	from, to *model.Class
}

// Set is an insertion ordered collection of distinct relations.
type Set struct {
	items []Relation
	index map[Relation]int
}

func NewSet() *Set {
	return &Set{
		items: make([]Relation, 0),
		index: make(map[Relation]int),
	}
}

// Add inserts r unless it is already present or is a self relation. It
// reports whether the set changed.
func (s *Set) Add(r Relation) bool {
	if r.From == nil || r.To == nil || r.From == r.To {
		return false
	}
	if _, ok := s.index[r]; ok {
		return false
	}
	s.index[r] = len(s.items)
	s.items = append(s.items, r)
	return true
}

func (s *Set) Has(r Relation) bool {
	_, ok := s.index[r]
	return ok
}

// Remove deletes r, keeping the order of the remaining relations.
func (s *Set) Remove(r Relation) bool {
	i, ok := s.index[r]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, r)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

func (s *Set) Len() int { return len(s.items) }

// All returns a copy of the relations in insertion order.
func (s *Set) All() []Relation {
	out := make([]Relation, len(s.items))
	copy(out, s.items)
	return out
}

// CountByKind tallies the relations per kind.
func (s *Set) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for _, r := range s.items {
		out[r.Kind]++
	}
	return out
}

// Prune drops every usage relation that is implied by a stronger usage
// relation between the same ordered pair.
func (s *Set) Prune() {
	strongest := make(map[pair]int)
	for _, r := range s.items {
		p := pair{r.From, r.To}
		if st := r.Kind.strength(); st > strongest[p] {
			strongest[p] = st
		}
	}
	kept := s.items[:0]
	for _, r := range s.items {
		st := r.Kind.strength()
		if st > 0 && st < strongest[pair{r.From, r.To}] {
			continue
		}
		kept = append(kept, r)
	}
	s.items = kept
	s.index = make(map[Relation]int, len(kept))
	for i, r := range kept {
		s.index[r] = i
	}
}
