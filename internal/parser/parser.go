package parser

import (
	"github.com/cmmoran/classdiagramgen/internal/model"
)

// Parser extracts the class structure of C# or Java source text. It keeps
// no state between calls and is safe for concurrent use.
type Parser struct {
	Dialect Dialect
}

func New(d Dialect) *Parser {
	return &Parser{Dialect: d}
}

// Parse returns the top-level classes declared in one compilation unit, in
// source order. Text that is not understood is skipped; Parse never fails.
func (p *Parser) Parse(src string) model.Classes {
	r := NewReader(Tokenize(src, p.Dialect.Directives))
	classes := make(model.Classes, 0)

	scope := ""
	byDepth := make(map[int]string)

	for !r.AtEnd() {
		line, _ := r.Peek()
		if name, ok := p.Dialect.scopeName(line.Text); ok {
			if p.Dialect.NestedScopes {
				if outer, ok := byDepth[line.Depth-1]; ok {
					name = outer + "." + name
				}
				byDepth[line.Depth] = name
			}
			scope = name
			r.Skip(1)
			continue
		}

		m := newMatcher(scope, p.Dialect.DefaultAccess)
		if cls, ok := m.tryClass(r, ""); ok {
			classes = append(classes, cls)
			continue
		}
		r.Skip(1)
	}
	return classes
}
