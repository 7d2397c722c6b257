package parser

import (
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// tryField matches a field, property, event or indexer declaration. It must
// run after tryMethod: a parameterless signature matches both grammars.
//
// The declared type may not itself be a modifier keyword; "public int" would
// otherwise read as a field named int of type public. Operator overloads
// are not fields either and are skipped.
func (m *matcher) tryField(r *Reader) (*model.Field, bool) {
	start := r.Position()
	line, ok := r.Read()
	if !ok {
		return nil, false
	}
	g := fieldRe.FindStringSubmatch(line.Text)
	if g == nil {
		r.Seek(start)
		return nil, false
	}

	typ := ParseType(g[2])
	if typ.IsPlaceholder() || model.IsModifierWord(typ.Name) || g[3] == "operator" {
		r.Seek(start)
		return nil, false
	}

	field := &model.Field{
		Modifier: model.ParseModifiers(g[1]).WithDefaultAccess(m.access),
		Name:     g[3],
		Type:     typ,
	}

	indexer := g[4]
	if indexer != "" {
		field.Property |= model.PropertyIndexer
		inner := strings.TrimSpace(indexer)
		inner = strings.TrimSuffix(strings.TrimPrefix(inner, "["), "]")
		field.IndexerArgs = parseArguments(inner)
	}

	tail := strings.TrimSpace(g[5])
	hasDefault := false
	switch {
	case strings.HasPrefix(tail, "=>"):
		field.Property |= model.PropertyGet
	case strings.Contains(tail, "="):
		hasDefault = true
	}

	accessors := m.scanAccessors(r, line.Depth)
	if !hasDefault {
		field.Property |= accessors
	}

	return field, true
}

// scanAccessors consumes the statements nested under a declaration and
// collects get/set accessors found exactly one level deeper.
func (m *matcher) scanAccessors(r *Reader, depth int) model.PropertyKind {
	var kind model.PropertyKind
	n := r.DeeperCount(depth)
	for i := 0; i < n; i++ {
		s, ok := r.Read()
		if !ok || s.Depth != depth+1 {
			continue
		}
		if getterRe.MatchString(s.Text) {
			kind |= model.PropertyGet
		}
		if setterRe.MatchString(s.Text) {
			kind |= model.PropertySet
		}
	}
	return kind
}
