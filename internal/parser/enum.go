package parser

import (
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// tryEnumValues reads a comma separated list of enum constants one level
// below the enum declaration. Initializers ("B = 2"), constructor arguments
// ("A(1)") and decorations are dropped; anonymous bodies are deeper
// statements and never reach this matcher. Every constant becomes a public
// static int field.
func tryEnumValues(r *Reader, enumDepth int) ([]*model.Field, bool) {
	start := r.Position()
	line, ok := r.Read()
	if !ok {
		return nil, false
	}
	if line.Depth != enumDepth+1 {
		r.Seek(start)
		return nil, false
	}

	values := make([]*model.Field, 0)
	for _, piece := range SplitTopLevel(line.Text, ',', parenPair) {
		piece = strings.TrimSpace(decorationRe.ReplaceAllString(strings.TrimSpace(piece), ""))
		g := enumValueRe.FindStringSubmatch(piece)
		if g == nil {
			continue
		}
		values = append(values, &model.Field{
			Modifier: model.Public | model.Static,
			Name:     g[1],
			Type:     &model.TypeRef{Name: "int"},
		})
	}
	return values, true
}
