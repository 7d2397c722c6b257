package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// builtinTypes maps source primitive and library type names to Go types.
// Entries returning nil mark types with no Go counterpart (void).
var builtinTypes = map[string]func() jen.Code{
	"void":     nil,
	"Void":     nil,
	"bool":     func() jen.Code { return jen.Bool() },
	"boolean":  func() jen.Code { return jen.Bool() },
	"Boolean":  func() jen.Code { return jen.Bool() },
	"byte":     func() jen.Code { return jen.Byte() },
	"Byte":     func() jen.Code { return jen.Byte() },
	"sbyte":    func() jen.Code { return jen.Int8() },
	"short":    func() jen.Code { return jen.Int16() },
	"Short":    func() jen.Code { return jen.Int16() },
	"ushort":   func() jen.Code { return jen.Uint16() },
	"int":      func() jen.Code { return jen.Int() },
	"Integer":  func() jen.Code { return jen.Int() },
	"uint":     func() jen.Code { return jen.Uint() },
	"long":     func() jen.Code { return jen.Int64() },
	"Long":     func() jen.Code { return jen.Int64() },
	"ulong":    func() jen.Code { return jen.Uint64() },
	"float":    func() jen.Code { return jen.Float32() },
	"Float":    func() jen.Code { return jen.Float32() },
	"double":   func() jen.Code { return jen.Float64() },
	"Double":   func() jen.Code { return jen.Float64() },
	"decimal":  func() jen.Code { return jen.Float64() },
	"char":     func() jen.Code { return jen.Rune() },
	"string":   func() jen.Code { return jen.String() },
	"String":   func() jen.Code { return jen.String() },
	"object":   func() jen.Code { return jen.Any() },
	"Object":   func() jen.Code { return jen.Any() },
	"DateTime": func() jen.Code { return jen.Qual("time", "Time") },
	"Date":     func() jen.Code { return jen.Qual("time", "Time") },
	"Instant":  func() jen.Code { return jen.Qual("time", "Time") },
	"TimeSpan": func() jen.Code { return jen.Qual("time", "Duration") },
	"Duration": func() jen.Code { return jen.Qual("time", "Duration") },
}

// sequenceTypes render as slices of their first type argument.
var sequenceTypes = map[string]bool{
	"List": true, "IList": true, "IEnumerable": true, "ICollection": true,
	"IReadOnlyList": true, "IReadOnlyCollection": true, "Collection": true,
	"ArrayList": true, "LinkedList": true, "Iterable": true,
	"Set": true, "HashSet": true, "ISet": true, "SortedSet": true, "TreeSet": true,
	"Queue": true, "Stack": true, "Deque": true,
}

// mapTypes render as maps keyed by the first type argument.
var mapTypes = map[string]bool{
	"Dictionary": true, "IDictionary": true, "IReadOnlyDictionary": true,
	"SortedDictionary": true, "Map": true, "HashMap": true, "TreeMap": true,
	"LinkedHashMap": true, "ConcurrentHashMap": true, "ConcurrentDictionary": true,
}

// stubGen holds the lookups for one GoStubs call.
type stubGen struct {
	known  map[string][]*model.Class
	ids    map[*model.Class]string
	params map[string]bool
	scope  string
}

// GoStubs writes Go type declarations mirroring classes: structs for
// classes and structs, interfaces with their methods, enums as int
// constants, and a plural slice alias per struct type.
func GoStubs(w io.Writer, pkg string, classes model.Classes) error {
	if pkg == "" {
		pkg = "model"
	}
	all := classes.Flatten()
	g := &stubGen{known: make(map[string][]*model.Class, len(all))}
	for _, c := range all {
		keys := []string{c.Name(), qualified(c)}
		if i := strings.LastIndex(c.Name(), "."); i >= 0 {
			keys = append(keys, c.Name()[i+1:])
		}
		for _, k := range keys {
			if !slices.Contains(g.known[k], c) {
				g.known[k] = append(g.known[k], c)
			}
		}
	}
	names := make(map[string]bool, len(all))
	g.ids = typeIdentifiers(all, names)

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by classdiagramgen. DO NOT EDIT.")

	for _, c := range all {
		g.scope = c.Scope
		g.params = make(map[string]bool, len(c.Type.TypeArgs))
		for _, p := range c.Type.TypeArgs {
			g.params[p.Name] = true
		}

		name := g.ids[c]
		f.Comment(fmt.Sprintf("%s mirrors %s %s.", name, c.Category, c.QualifiedName()))
		switch c.Category {
		case model.CategoryEnum:
			g.enum(f, name, c)
		case model.CategoryInterface:
			f.Type().Id(name).Add(g.typeParams(c)).Interface(g.methods(c)...)
		default:
			f.Type().Id(name).Add(g.typeParams(c)).Struct(g.fields(c)...)
			if plural := inflection.Plural(name); plural != name && !names[plural] && len(c.Type.TypeArgs) == 0 {
				names[plural] = true
				f.Type().Id(plural).Index().Op("*").Id(name)
			}
		}
		f.Line()
	}

	if err := f.Render(w); err != nil {
		return fmt.Errorf("render go stubs: %w", err)
	}
	return nil
}

// typeIdentifiers gives every class a distinct Go type name and records the
// names in taken. A name shared by several classes is qualified with the
// scope first (X.Foo becomes XFoo), then with the type parameter count
// (Gen<K,V> becomes Gen2), then numbered.
func typeIdentifiers(all []*model.Class, taken map[string]bool) map[*model.Class]string {
	byName := make(map[string][]*model.Class, len(all))
	for _, c := range all {
		byName[goName(c.Name())] = append(byName[goName(c.Name())], c)
	}

	ids := make(map[*model.Class]string, len(all))
	for _, c := range all {
		if name := goName(c.Name()); len(byName[name]) == 1 {
			ids[c] = name
			taken[name] = true
		}
	}

	for _, c := range all {
		if _, ok := ids[c]; ok {
			continue
		}
		group := byName[goName(c.Name())]
		name := goName(c.Scope) + goName(c.Name())
		if !unique(group, c, func(o *model.Class) string { return goName(o.Scope) + goName(o.Name()) }) || taken[name] {
			name += strconv.Itoa(len(c.Type.TypeArgs))
		}
		for n, base := 2, name; taken[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		ids[c] = name
		taken[name] = true
	}
	return ids
}

// unique reports whether key(c) differs from key of every other class in
// group.
func unique(group []*model.Class, c *model.Class, key func(*model.Class) string) bool {
	for _, o := range group {
		if o != c && key(o) == key(c) {
			return false
		}
	}
	return true
}

func (g *stubGen) typeParams(c *model.Class) jen.Code {
	if len(c.Type.TypeArgs) == 0 {
		return jen.Null()
	}
	params := make([]jen.Code, 0, len(c.Type.TypeArgs))
	for _, p := range c.Type.TypeArgs {
		params = append(params, jen.Id(exported(p.Name)).Any())
	}
	return jen.Types(params...)
}

func (g *stubGen) enum(f *jen.File, name string, c *model.Class) {
	f.Type().Id(name).Int()
	if len(c.Fields) == 0 {
		return
	}
	defs := make([]jen.Code, 0, len(c.Fields))
	for i, v := range c.Fields {
		id := jen.Id(name + exported(v.Name))
		if i == 0 {
			id = id.Id(name).Op("=").Iota()
		}
		defs = append(defs, id)
	}
	f.Const().Defs(defs...)
}

func (g *stubGen) fields(c *model.Class) []jen.Code {
	out := make([]jen.Code, 0, len(c.Fields))
	seen := make(map[string]bool, len(c.Fields))
	for _, fl := range c.Fields {
		if fl.Property.Has(model.PropertyIndexer) || fl.Modifier.Has(model.Static) || fl.Modifier.Has(model.Const) || fl.Modifier.Has(model.Event) {
			continue
		}
		name := exported(fl.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		typ := g.goType(fl.Type)
		if typ == nil {
			typ = jen.Any()
		}
		out = append(out, jen.Id(name).Add(typ))
	}
	return out
}

func (g *stubGen) methods(c *model.Class) []jen.Code {
	out := make([]jen.Code, 0, len(c.Methods))
	seen := make(map[string]bool, len(c.Methods))
	for _, m := range c.Methods {
		name := exported(m.Name)
		if m.IsConstructor() || m.Modifier.Has(model.Static) || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		params := make([]jen.Code, 0, len(m.Arguments))
		for _, a := range m.Arguments {
			p := g.goType(a.Type)
			if p == nil {
				p = jen.Any()
			}
			params = append(params, jen.Id(unexported(a.Name)).Add(p))
		}
		sig := jen.Id(name).Params(params...)
		if ret := g.goType(m.ReturnType); ret != nil {
			sig = sig.Add(ret)
		}
		out = append(out, sig)
	}
	return out
}

// goType maps a source type to Go. It returns nil for void.
func (g *stubGen) goType(t *model.TypeRef) jen.Code {
	if t.IsPlaceholder() {
		return jen.Any()
	}
	base := g.baseType(t)
	if base == nil {
		return nil
	}
	for i := 0; i < t.ArrayRank; i++ {
		base = jen.Index().Add(base)
	}
	return base
}

func (g *stubGen) baseType(t *model.TypeRef) jen.Code {
	if g.params[t.Name] {
		return jen.Id(exported(t.Name))
	}
	if fn, ok := builtinTypes[t.Name]; ok {
		if fn == nil {
			return nil
		}
		return fn()
	}
	if sequenceTypes[t.Name] && len(t.TypeArgs) == 1 {
		return jen.Index().Add(g.argType(t.TypeArgs[0]))
	}
	if mapTypes[t.Name] && len(t.TypeArgs) == 2 {
		return jen.Map(g.argType(t.TypeArgs[0])).Add(g.argType(t.TypeArgs[1]))
	}
	if c := g.lookup(t); c != nil {
		id := jen.Id(g.ids[c])
		if len(t.TypeArgs) > 0 && len(t.TypeArgs) == len(c.Type.TypeArgs) {
			args := make([]jen.Code, 0, len(t.TypeArgs))
			for _, a := range t.TypeArgs {
				args = append(args, g.argType(a))
			}
			id = id.Types(args...)
		}
		if c.Category == model.CategoryClass {
			return jen.Op("*").Add(id)
		}
		return id
	}
	return jen.Any()
}

// lookup finds the class a reference names: by declared or qualified name,
// else by the last segment of a qualified reference. Among several
// candidates an exact name wins, then a matching type argument count, then
// the scope of the class being written, then input order.
func (g *stubGen) lookup(t *model.TypeRef) *model.Class {
	cands := g.known[t.Name]
	if len(cands) == 0 {
		if i := strings.LastIndex(t.Name, "."); i >= 0 {
			cands = g.known[t.Name[i+1:]]
		}
	}
	if len(cands) == 0 {
		return nil
	}

	best, bestScore := cands[0], -1
	for _, c := range cands {
		score := 0
		if c.Name() == t.Name || qualified(c) == t.Name {
			score += 4
		}
		if len(c.Type.TypeArgs) == len(t.TypeArgs) {
			score += 2
		}
		if c.Scope == g.scope {
			score++
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// qualified is Scope.Name without the arity suffix of QualifiedName.
func qualified(c *model.Class) string {
	if c.Scope == "" {
		return c.Name()
	}
	return c.Scope + "." + c.Name()
}

func (g *stubGen) argType(t *model.TypeRef) jen.Code {
	if c := g.goType(t); c != nil {
		return c
	}
	return jen.Any()
}

// goName turns a dotted source name into a Go identifier: Outer.Inner
// becomes OuterInner.
func goName(name string) string {
	var sb strings.Builder
	for _, part := range strings.Split(name, ".") {
		sb.WriteString(exported(part))
	}
	return sb.String()
}

func exported(name string) string {
	name = identifier(name)
	if name == "" {
		return ""
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func unexported(name string) string {
	name = identifier(name)
	if name == "" {
		return "_"
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	out := string(r)
	if goKeywords[out] {
		return out + "_"
	}
	return out
}

// identifier drops every rune that cannot appear in a Go identifier, and a
// leading digit.
func identifier(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r == '_' || unicode.IsLetter(r) || (unicode.IsDigit(r) && sb.Len() > 0) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}
