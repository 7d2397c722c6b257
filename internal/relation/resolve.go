package relation

import (
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// resolver maps type references onto known classes by comparing dotted name
// segments from the right.
type resolver struct {
	classes  []*model.Class
	segments [][]string
}

func newResolver(classes []*model.Class) *resolver {
	r := &resolver{
		classes:  classes,
		segments: make([][]string, len(classes)),
	}
	for i, c := range classes {
		r.segments[i] = strings.Split(c.QualifiedName(), ".")
	}
	return r
}

// Resolve returns the class ref names, or nil. A bare reference matches a
// qualified class and a qualified reference matches a class declared
// without scope; when several classes match, the least qualified one wins
// and equal candidates go to the first in input order.
func (r *resolver) Resolve(ref *model.TypeRef) *model.Class {
	if ref.IsPlaceholder() {
		return nil
	}
	want := strings.Split(ref.ExactName(), ".")

	var best *model.Class
	bestLen := 0
	for i, c := range r.classes {
		segs := r.segments[i]
		if !suffixMatch(want, segs) {
			continue
		}
		if best == nil || len(segs) < bestLen {
			best, bestLen = c, len(segs)
		}
	}
	return best
}

// suffixMatch reports whether a and b agree on the last min(len(a), len(b))
// segments.
func suffixMatch(a, b []string) bool {
	n := min(len(a), len(b))
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return false
		}
	}
	return true
}
