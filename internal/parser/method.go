package parser

import (
	"github.com/cmmoran/classdiagramgen/internal/model"
)

// tryMethod matches a method or constructor signature at the cursor and
// consumes its body. On failure the cursor is left where it was.
func (m *matcher) tryMethod(r *Reader, owner *model.Class) (*model.Method, bool) {
	start := r.Position()
	line, ok := r.Read()
	if !ok {
		return nil, false
	}
	g := methodRe.FindStringSubmatch(line.Text)
	if g == nil {
		r.Seek(start)
		return nil, false
	}

	mod := model.ParseModifiers(g[1]).WithDefaultAccess(m.access)
	if owner != nil && owner.Category == model.CategoryInterface {
		mod = mod&^model.AccessLevels | model.Public | model.Abstract
	}

	method := &model.Method{
		Modifier:  mod,
		Name:      g[3],
		Arguments: parseArguments(g[4]),
	}
	if g[2] != "" {
		method.ReturnType = ParseType(g[2])
	}

	skipBody(r, line.Depth)
	return method, true
}
