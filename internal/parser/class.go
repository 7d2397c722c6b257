package parser

import (
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// matcher carries the context a compilation unit is parsed in: the current
// namespace or package and the access level applied when a declaration
// names none.
type matcher struct {
	scope  string
	access model.Modifier
}

func newMatcher(scope string, access model.Modifier) *matcher {
	return &matcher{scope: scope, access: access.Access()}
}

// tryClass matches a class, interface, enum or struct declaration and parses
// its body recursively. parent is the enclosing class name, empty at top
// level; inner classes are named Parent.Inner.
func (m *matcher) tryClass(r *Reader, parent string) (*model.Class, bool) {
	start := r.Position()
	line, ok := r.Read()
	if !ok {
		return nil, false
	}
	g := classRe.FindStringSubmatch(line.Text)
	if g == nil {
		r.Seek(start)
		return nil, false
	}
	category, ok := model.ParseCategory(g[2])
	if !ok {
		r.Seek(start)
		return nil, false
	}

	name := g[3]
	if parent != "" {
		name = parent + "." + name
	}
	cls := model.NewClass(
		model.ParseModifiers(g[1]).WithDefaultAccess(m.access),
		category,
		m.scope,
		ParseType(stripBounds(name)),
		parseInheritance(g[4]),
	)

	m.parseBody(r, cls, line.Depth)
	return cls, true
}

// parseBody walks the statements nested under a class declaration at depth.
// Only statements exactly one level deeper are matched; anything deeper
// belongs to a member that failed to match and is skipped.
func (m *matcher) parseBody(r *Reader, cls *model.Class, depth int) {
	end := r.Position() + r.DeeperCount(depth)
	isEnum := cls.Category == model.CategoryEnum
	first := true

	for r.Position() < end {
		next, ok := r.Peek()
		if !ok {
			return
		}
		if next.Depth != depth+1 {
			r.Skip(1)
			continue
		}

		if first && isEnum {
			if values, ok := tryEnumValues(r, depth); ok {
				cls.Fields = append(cls.Fields, values...)
				first = false
				continue
			}
		}
		first = false

		if inner, ok := m.tryClass(r, cls.Name()); ok {
			cls.Inner = append(cls.Inner, inner)
			continue
		}
		if method, ok := m.tryMethod(r, cls); ok {
			cls.Methods = append(cls.Methods, method)
			continue
		}
		if field, ok := m.tryField(r); ok {
			cls.Fields = append(cls.Fields, field)
			continue
		}
		if isEnum {
			if values, ok := tryEnumValues(r, depth); ok {
				cls.Fields = append(cls.Fields, values...)
				continue
			}
		}
		r.Skip(1)
	}
}

// stripBounds reduces each declared type parameter to its name:
// "Box<T extends Comparable<T>, in U>" becomes "Box<T,U>".
func stripBounds(name string) string {
	open := strings.IndexByte(name, '<')
	end := strings.LastIndexByte(name, '>')
	if open < 0 || end < open {
		return name
	}
	params := SplitTopLevel(name[open+1:end], ',', genericPair)
	for i, p := range params {
		p = strings.TrimSpace(p)
		if loc := boundRe.FindStringIndex(p); loc != nil {
			p = p[:loc[0]]
		}
		params[i] = varianceRe.ReplaceAllString(p, "")
	}
	return name[:open] + "<" + strings.Join(params, ",") + ">"
}

// parseInheritance turns ": A, B<C>" or "extends A implements B, C" into
// type references.
func parseInheritance(text string) []*model.TypeRef {
	out := make([]*model.TypeRef, 0)
	text = inheritKeywordRe.ReplaceAllString(text, ",")
	for _, piece := range SplitTopLevel(text, ',', genericPair) {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		out = append(out, ParseType(piece))
	}
	return out
}
