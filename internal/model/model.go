package model

import (
	"strconv"
	"strings"
)

type Category int

const (
	CategoryClass Category = iota
	CategoryInterface
	CategoryEnum
	CategoryStruct
)

var categoryWords = [...]string{"class", "interface", "enum", "struct"}

// ParseCategory maps a declaration keyword (class, interface, enum, struct).
func ParseCategory(word string) (Category, bool) {
	for i, w := range categoryWords {
		if w == word {
			return Category(i), true
		}
	}
	return CategoryClass, false
}

// CategoryWords returns the declaration keywords in Category order.
func CategoryWords() []string { return categoryWords[:] }

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryWords) {
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryWords[c]
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// PropertyKind flags a field that is really a property or an indexer.
type PropertyKind uint8

const (
	PropertyGet PropertyKind = 1 << iota
	PropertySet
	PropertyIndexer

	PropertyNone PropertyKind = 0
)

func (p PropertyKind) Has(flag PropertyKind) bool { return p&flag == flag && flag != PropertyNone }

func (p PropertyKind) String() string {
	parts := make([]string, 0, 3)
	if p.Has(PropertyGet) {
		parts = append(parts, "get")
	}
	if p.Has(PropertySet) {
		parts = append(parts, "set")
	}
	if p.Has(PropertyIndexer) {
		parts = append(parts, "indexer")
	}
	return strings.Join(parts, ",")
}

func (p PropertyKind) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// ArgumentModifier is the parameter-passing keyword in front of an argument.
// "params" carries no meaning for the model and maps to ArgNone.
type ArgumentModifier int

const (
	ArgNone ArgumentModifier = iota
	ArgThis
	ArgIn
	ArgOut
	ArgRef
)

var argumentModifierWords = [...]string{"", "this", "in", "out", "ref"}

func ParseArgumentModifier(word string) ArgumentModifier {
	for i, w := range argumentModifierWords {
		if w != "" && w == word {
			return ArgumentModifier(i)
		}
	}
	return ArgNone
}

func (a ArgumentModifier) String() string {
	if a < 0 || int(a) >= len(argumentModifierWords) {
		return ""
	}
	return argumentModifierWords[a]
}

func (a ArgumentModifier) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// TypeRef is an immutable parsed type expression. Build one with WorkingType.
type TypeRef struct {
	Name      string     `json:"name" yaml:"name"`
	TypeArgs  []*TypeRef `json:"type_args,omitempty" yaml:"type_args,omitempty"`
	ArrayRank int        `json:"array_rank,omitempty" yaml:"array_rank,omitempty"`
}

// IsPlaceholder reports a type recovered from blank or degenerate text.
func (t *TypeRef) IsPlaceholder() bool { return t == nil || t.Name == "" }

// ExactName is Name plus a "`N" arity suffix for generic types, so that
// Foo<T> and Foo<K,V> stay distinct.
func (t *TypeRef) ExactName() string {
	if t == nil {
		return ""
	}
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	return t.Name + "`" + strconv.Itoa(len(t.TypeArgs))
}

// ContainedTypes flattens t and its whole type-argument subtree, depth first.
func (t *TypeRef) ContainedTypes() []*TypeRef {
	if t == nil {
		return nil
	}
	out := []*TypeRef{t}
	for _, a := range t.TypeArgs {
		out = append(out, a.ContainedTypes()...)
	}
	return out
}

func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *TypeRef) write(sb *strings.Builder) {
	sb.WriteString(t.Name)
	if len(t.TypeArgs) > 0 {
		sb.WriteByte('<')
		for i, a := range t.TypeArgs {
			if i > 0 {
				sb.WriteByte(',')
			}
			a.write(sb)
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.ArrayRank; i++ {
		sb.WriteString("[]")
	}
}

func (t *TypeRef) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

type Argument struct {
	Modifier ArgumentModifier `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	Type     *TypeRef         `json:"type" yaml:"type"`
	Name     string           `json:"name" yaml:"name"`
}

type Field struct {
	Modifier    Modifier     `json:"modifier" yaml:"modifier"`
	Name        string       `json:"name" yaml:"name"`
	Type        *TypeRef     `json:"type" yaml:"type"`
	Property    PropertyKind `json:"property,omitempty" yaml:"property,omitempty"`
	IndexerArgs []*Argument  `json:"indexer_args,omitempty" yaml:"indexer_args,omitempty"`
}

// RelatedTypes returns every type the field mentions: its own type tree and
// the type trees of its indexer arguments.
func (f *Field) RelatedTypes() []*TypeRef {
	out := f.Type.ContainedTypes()
	for _, a := range f.IndexerArgs {
		out = append(out, a.Type.ContainedTypes()...)
	}
	return out
}

type Method struct {
	Modifier   Modifier    `json:"modifier" yaml:"modifier"`
	Name       string      `json:"name" yaml:"name"`
	ReturnType *TypeRef    `json:"return_type,omitempty" yaml:"return_type,omitempty"` // nil for constructors
	Arguments  []*Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

func (m *Method) IsConstructor() bool { return m.ReturnType == nil }

// RelatedTypes returns the return type tree followed by each argument's type tree.
func (m *Method) RelatedTypes() []*TypeRef {
	out := m.ReturnType.ContainedTypes()
	for _, a := range m.Arguments {
		out = append(out, a.Type.ContainedTypes()...)
	}
	return out
}

// Class is one declared class, interface, enum or struct. It owns its members
// and inner classes; nothing is shared between trees.
type Class struct {
	Modifier  Modifier   `json:"modifier" yaml:"modifier"`
	Category  Category   `json:"category" yaml:"category"`
	Scope     string     `json:"scope,omitempty" yaml:"scope,omitempty"` // namespace or package
	Type      *TypeRef   `json:"type" yaml:"type"`
	Inherited []*TypeRef `json:"inherited,omitempty" yaml:"inherited,omitempty"`
	Inner     []*Class   `json:"inner,omitempty" yaml:"inner,omitempty"`
	Methods   []*Method  `json:"methods,omitempty" yaml:"methods,omitempty"`
	Fields    []*Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// NewClass returns a Class with every collection initialized.
func NewClass(mod Modifier, cat Category, scope string, typ *TypeRef, inherited []*TypeRef) *Class {
	if typ == nil {
		typ = &TypeRef{}
	}
	if inherited == nil {
		inherited = make([]*TypeRef, 0)
	}
	return &Class{
		Modifier:  mod,
		Category:  cat,
		Scope:     scope,
		Type:      typ,
		Inherited: inherited,
		Inner:     make([]*Class, 0),
		Methods:   make([]*Method, 0),
		Fields:    make([]*Field, 0),
	}
}

// Name is the declared name, dotted for inner classes (Outer.Inner).
func (c *Class) Name() string { return c.Type.Name }

// QualifiedName is Scope.ExactName, or ExactName alone outside any scope.
func (c *Class) QualifiedName() string {
	if c.Scope == "" {
		return c.Type.ExactName()
	}
	return c.Scope + "." + c.Type.ExactName()
}

// All returns c followed by its inner classes, recursively, in declaration order.
func (c *Class) All() []*Class {
	out := []*Class{c}
	for _, in := range c.Inner {
		out = append(out, in.All()...)
	}
	return out
}

type Classes []*Class

// Find returns the first class whose Name matches, searching inner classes too.
func (x Classes) Find(name string) *Class {
	for _, c := range x.Flatten() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Flatten lists every class and inner class in declaration order.
func (x Classes) Flatten() []*Class {
	out := make([]*Class, 0, len(x))
	for _, c := range x {
		out = append(out, c.All()...)
	}
	return out
}
