package render

import (
	"io"
	"sort"
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
	"github.com/cmmoran/classdiagramgen/internal/relation"
)

const commentPrefix = "'"

var arrows = map[relation.Kind]string{
	relation.Dependency:     ".down.>",
	relation.Association:    "-down->",
	relation.Aggregation:    "o-down->",
	relation.Composition:    "*-down->",
	relation.Generalization: "-up-|>",
	relation.Realization:    ".up.|>",
	relation.Nested:         "-down-+", // down, so inner classes sit under their parent
}

var categoryKeywords = map[model.Category]string{
	model.CategoryClass:     "class",
	model.CategoryInterface: "interface",
	model.CategoryEnum:      "enum",
	model.CategoryStruct:    "class",
}

// PlantUML writes d as a PlantUML class diagram.
func PlantUML(w io.Writer, d Diagram) error {
	cw := newCodeWriter("\n")

	cw.line("@startuml ", d.Title).
		line().
		line("skinparam classAttributeIconSize 0").
		line()

	for _, group := range groupByScope(d.Classes) {
		if group.scope != "" {
			cw.line("package ", group.scope, " {").line()
			cw.in()
		}
		for _, c := range group.classes {
			writeClass(cw, d, c, false)
		}
		if group.scope != "" {
			cw.out()
			cw.line("}").line()
		}
	}

	for _, r := range d.Relations {
		if r.From == r.To {
			continue
		}
		if d.isExcluded(r.From) || d.isExcluded(r.To) {
			cw.prefix = commentPrefix
		}
		cw.line(r.From.Name(), " ", arrows[r.Kind], " ", r.To.Name())
		cw.prefix = ""
	}

	cw.line().line("@enduml")
	return cw.flush(w)
}

type scopeGroup struct {
	scope   string
	classes []*model.Class
}

// groupByScope buckets top-level classes by scope, sorting scopes and the
// classes within each scope by name.
func groupByScope(classes model.Classes) []scopeGroup {
	byScope := make(map[string][]*model.Class)
	for _, c := range classes {
		byScope[c.Scope] = append(byScope[c.Scope], c)
	}
	scopes := make([]string, 0, len(byScope))
	for s := range byScope {
		scopes = append(scopes, s)
	}
	sort.Strings(scopes)

	out := make([]scopeGroup, 0, len(scopes))
	for _, s := range scopes {
		cs := byScope[s]
		sort.SliceStable(cs, func(i, j int) bool { return cs[i].Name() < cs[j].Name() })
		out = append(out, scopeGroup{scope: s, classes: cs})
	}
	return out
}

// writeClass writes c and then its inner classes. An excluded class, and
// everything inside it, is written commented out.
func writeClass(cw *codeWriter, d Diagram, c *model.Class, excluded bool) {
	excluded = excluded || d.isExcluded(c)
	if excluded {
		cw.prefix = commentPrefix
	}

	abstract := ""
	if c.Modifier.Has(model.Abstract) {
		abstract = "abstract "
	}
	stereotype := ""
	if c.Category == model.CategoryStruct {
		stereotype = "<<struct>> "
	}
	cw.line(abstract, categoryKeywords[c.Category], " ", c.Type.String(), " ", stereotype, "{")
	cw.in()

	for _, f := range c.Fields {
		memberPrefix(cw, d, f.Modifier, excluded)
		writeField(cw, f)
	}
	for _, m := range c.Methods {
		memberPrefix(cw, d, m.Modifier, excluded)
		writeMethod(cw, m)
	}
	cw.prefix = ""
	if excluded {
		cw.prefix = commentPrefix
	}

	cw.out()
	cw.line("}").line()

	for _, in := range c.Inner {
		writeClass(cw, d, in, excluded)
	}
	cw.prefix = ""
}

func memberPrefix(cw *codeWriter, d Diagram, mod model.Modifier, excluded bool) {
	if excluded || !d.accepts(mod) {
		cw.prefix = commentPrefix
		return
	}
	cw.prefix = ""
}

func writeField(cw *codeWriter, f *model.Field) {
	stereotypes := make([]string, 0, 3)
	if f.Modifier.Has(model.Event) {
		stereotypes = append(stereotypes, "event")
	}
	if f.Property.Has(model.PropertyGet) {
		stereotypes = append(stereotypes, "get")
	}
	if f.Property.Has(model.PropertySet) {
		stereotypes = append(stereotypes, "set")
	}
	stereotype := ""
	if len(stereotypes) > 0 {
		stereotype = "<<" + strings.Join(stereotypes, ",") + ">> "
	}

	indexer := ""
	if len(f.IndexerArgs) > 0 {
		indexer = "[" + argumentsText(f.IndexerArgs) + "]"
	}

	cw.line(accessSymbol(f.Modifier), " ", stereotype, modifierText(f.Modifier), f.Name, indexer, " : ", f.Type.String())
}

func writeMethod(cw *codeWriter, m *model.Method) {
	ret := ""
	if !m.IsConstructor() {
		ret = " : " + m.ReturnType.String()
	}
	cw.line(accessSymbol(m.Modifier), " ", modifierText(m.Modifier), m.Name, "(", argumentsText(m.Arguments), ")", ret)
}

func argumentsText(args []*model.Argument) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.Name+" : "+a.Type.String())
	}
	return strings.Join(parts, ", ")
}

func accessSymbol(mod model.Modifier) string {
	switch {
	case mod.Has(model.Public):
		return "+"
	case mod.Has(model.Protected):
		return "#"
	case mod.Has(model.Internal), mod.Has(model.Package):
		return "~"
	case mod.Has(model.Private):
		return "-"
	default:
		return "~"
	}
}

func modifierText(mod model.Modifier) string {
	var sb strings.Builder
	if mod.Has(model.Abstract) {
		sb.WriteString("{abstract} ")
	}
	if mod.Has(model.Static) || mod.Has(model.Const) {
		sb.WriteString("{static} ")
	}
	return sb.String()
}
