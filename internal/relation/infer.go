package relation

import (
	"github.com/cmmoran/classdiagramgen/internal/model"
)

// Infer derives the relations between classes, including inner classes, and
// prunes the redundant ones. References to types outside classes are
// ignored.
//
//   - inherited interface: Realization; any other inherited class: Generalization
//   - inner class: Nested(inner -> outer)
//   - type mentioned by a field: Association
//   - type mentioned by a method signature: Dependency
func Infer(classes model.Classes) *Set {
	all := classes.Flatten()
	res := newResolver(all)
	set := NewSet()

	for _, c := range all {
		for _, inh := range c.Inherited {
			target := res.Resolve(inh)
			if target == nil {
				continue
			}
			kind := Generalization
			if target.Category == model.CategoryInterface {
				kind = Realization
			}
			set.Add(Relation{From: c, To: target, Kind: kind})
		}

		for _, in := range c.Inner {
			set.Add(Relation{From: in, To: c, Kind: Nested})
		}

		for _, f := range c.Fields {
			addAll(set, res, c, f.RelatedTypes(), Association)
		}
		for _, m := range c.Methods {
			addAll(set, res, c, m.RelatedTypes(), Dependency)
		}
	}

	set.Prune()
	return set
}

func addAll(set *Set, res *resolver, from *model.Class, refs []*model.TypeRef, kind Kind) {
	for _, ref := range refs {
		if to := res.Resolve(ref); to != nil {
			set.Add(Relation{From: from, To: to, Kind: kind})
		}
	}
}
