package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classdiagramgen/internal/model"
	"github.com/cmmoran/classdiagramgen/internal/parser"
	"github.com/cmmoran/classdiagramgen/internal/relation"
)

const shopSource = `
namespace Shop
{
	public abstract class Animal : IFeed
	{
		protected string name;
		public static int Count { get; private set; }
		public Animal(string name) { }
		public abstract void Speak(int times, string[] words);
		private void Hidden() { }
	}

	public interface IFeed
	{
		void Feed(Food food);
	}

	public struct Food { public int Calories; }
}
`

func diagramOf(title, src string) Diagram {
	classes := parser.New(parser.CSharp).Parse(src)
	return Diagram{
		Title:     title,
		Classes:   classes,
		Relations: relation.Infer(classes).All(),
	}
}

func TestPlantUML(ttt *testing.T) {
	tests := []struct {
		name   string
		src    string
		filter model.Modifier
		exclud []string
		want   []string
	}{
		{
			name:   "scoped classes with access filter",
			src:    shopSource,
			filter: model.Public | model.Protected,
			want: []string{
				"@startuml test",
				"",
				"skinparam classAttributeIconSize 0",
				"",
				"package Shop {",
				"",
				"\tabstract class Animal {",
				"\t\t# name : string",
				"\t\t+ <<get,set>> {static} Count : int",
				"\t\t+ Animal(name : string)",
				"\t\t+ {abstract} Speak(times : int, words : string[]) : void",
				"\t\t'- Hidden() : void",
				"\t}",
				"",
				"\tclass Food <<struct>> {",
				"\t\t+ Calories : int",
				"\t}",
				"",
				"\tinterface IFeed {",
				"\t\t+ {abstract} Feed(food : Food) : void",
				"\t}",
				"",
				"}",
				"",
				"Animal .up.|> IFeed",
				"IFeed .down.> Food",
				"",
				"@enduml",
				"",
			},
		},
		{
			name:   "excluded class and its inner classes",
			src:    "class Outer { class Inner { } } class User { Outer o; }",
			exclud: []string{"Outer"},
			want: []string{
				"@startuml test",
				"",
				"skinparam classAttributeIconSize 0",
				"",
				"'class Outer {",
				"'}",
				"",
				"'class Outer.Inner {",
				"'}",
				"",
				"class User {",
				"\t~ o : Outer",
				"}",
				"",
				"'Outer.Inner -down-+ Outer",
				"'User -down-> Outer",
				"",
				"@enduml",
				"",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := diagramOf("test", tt.src)
			d.AccessFilter = tt.filter
			d.Excluded = tt.exclud

			var buf bytes.Buffer
			require.NoError(t, PlantUML(&buf, d))
			got := strings.Split(buf.String(), "\n")
			require.Empty(t, cmp.Diff(tt.want, got))
		})
	}
}

func TestPlantUMLSelfRelationSkipped(t *testing.T) {
	t.Parallel()
	c := model.NewClass(model.Public, model.CategoryClass, "", &model.TypeRef{Name: "A"}, nil)
	d := Diagram{
		Title:     "self",
		Classes:   model.Classes{c},
		Relations: []relation.Relation{{From: c, To: c, Kind: relation.Association}},
	}
	var buf bytes.Buffer
	require.NoError(t, PlantUML(&buf, d))
	require.NotContains(t, buf.String(), "-down->")
}

func TestAccessSymbolAndModifiers(ttt *testing.T) {
	tests := []struct {
		mod      model.Modifier
		symbol   string
		modifier string
	}{
		{model.Public | model.Static, "+", "{static} "},
		{model.Protected | model.Internal, "#", ""},
		{model.Internal | model.Abstract, "~", "{abstract} "},
		{model.Package | model.Const, "~", "{static} "},
		{model.Private | model.Abstract | model.Static, "-", "{abstract} {static} "},
		{model.None, "~", ""},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.mod.String(), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.symbol, accessSymbol(tt.mod))
			require.Equal(t, tt.modifier, modifierText(tt.mod))
		})
	}
}

func TestParseFormat(ttt *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatPlantUML},
		{in: "PUML", want: FormatPlantUML},
		{in: ".yml", want: FormatYAML},
		{in: "json", want: FormatJSON},
		{in: "go", want: FormatGo},
		{in: "svg", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, diagramOf("shop", shopSource)))

	var doc struct {
		Title   string `json:"title"`
		Classes []struct {
			Modifier string `json:"modifier"`
			Category string `json:"category"`
			Scope    string `json:"scope"`
			Type     string `json:"type"`
		} `json:"classes"`
		Relations []map[string]string `json:"relations"`
		Summary   map[string]int      `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Equal(t, "shop", doc.Title)
	require.Len(t, doc.Classes, 3)
	require.Equal(t, "public abstract", doc.Classes[0].Modifier)
	require.Equal(t, "class", doc.Classes[0].Category)
	require.Equal(t, "Shop", doc.Classes[0].Scope)
	require.Equal(t, "Animal", doc.Classes[0].Type)
	require.Equal(t, "struct", doc.Classes[2].Category)
	require.Equal(t, []map[string]string{
		{"from": "Shop.Animal", "to": "Shop.IFeed", "kind": "realization"},
		{"from": "Shop.IFeed", "to": "Shop.Food", "kind": "dependency"},
	}, doc.Relations)
	require.Equal(t, map[string]int{"realization": 1, "dependency": 1}, doc.Summary)
}

func TestExportYAMLExcludes(t *testing.T) {
	t.Parallel()

	d := diagramOf("shop", shopSource)
	d.Excluded = []string{"Food"}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatYAML, d))
	out := buf.String()

	require.Contains(t, out, "title: shop")
	require.Contains(t, out, "from: Shop.Animal")
	require.Contains(t, out, "kind: realization")
	require.NotContains(t, out, "Shop.Food")
	require.NotContains(t, out, "Calories")
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()
	err := Render(&bytes.Buffer{}, Format("svg"), Diagram{})
	require.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestGoStubs(t *testing.T) {
	t.Parallel()

	src := `
namespace Shop
{
	public enum Color { Red, Green }

	public class Order<T>
	{
		public List<Line> Lines;
		public Dictionary<string, int> Counts;
		public T Tag;
		public static int Total;
	}

	public class Line
	{
		public Color Color;
		public Order<int> Owner;
		public DateTime At;
		public double[] Values;
	}

	public interface IRepo
	{
		Line Find(int id);
		void Save(Line line);
	}
}
`
	d := diagramOf("shop", src)
	d.GoPackage = "shop"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatGo, d))
	out := buf.String()

	patterns := []string{
		`(?m)^// Code generated by classdiagramgen\. DO NOT EDIT\.$`,
		`(?m)^package shop$`,
		`import "time"`,
		`(?m)^type Color int$`,
		`ColorRed\s+Color = iota`,
		`(?m)^\s+ColorGreen$`,
		`type Order\[T any\] struct`,
		`Lines\s+\[\]\*Line`,
		`Counts\s+map\[string\]int`,
		`Tag\s+T`,
		`Color\s+Color`,
		`Owner\s+\*Order\[int\]`,
		`At\s+time\.Time`,
		`Values\s+\[\]float64`,
		`(?m)^type Lines \[\]\*Line$`,
		`type IRepo interface`,
		`Find\(id int\) \*Line`,
		`Save\(line \*Line\)`,
	}
	for _, p := range patterns {
		require.Regexp(t, regexp.MustCompile(p), out)
	}
	require.NotContains(t, out, "Total")
	require.NotContains(t, out, "type Orders")
}

func TestGoNames(ttt *testing.T) {
	tests := []struct {
		in, goName, unexported string
	}{
		{"Outer.Inner", "OuterInner", "outer"},
		{"value", "Value", "value"},
		{"type", "Type", "type_"},
		{"_", "_", "_"},
		{"1st", "St", "st"},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.goName, goName(tt.in))
			require.Equal(t, tt.unexported, unexported(strings.Split(tt.in, ".")[0]))
		})
	}
}

func TestGoStubsDistinctNames(t *testing.T) {
	t.Parallel()

	p := parser.New(parser.CSharp)
	classes := append(p.Parse(`
namespace X
{
	public class Foo { public int A; }
}`), p.Parse(`
namespace Y
{
	public class Foo { public string B; }

	public class User
	{
		public Foo Mine;
		public X.Foo Theirs;
		public Gen<int, string> Pair;
	}
}`)...)
	classes = append(classes, p.Parse(`
public class Gen<T> { public T Value; }
public class Gen<K, V> { public K Key; }
`)...)

	var buf bytes.Buffer
	require.NoError(t, GoStubs(&buf, "stubs", classes))
	out := buf.String()

	file, err := goparser.ParseFile(token.NewFileSet(), "stubs.go", buf.Bytes(), 0)
	require.NoError(t, err, out)

	seen := make(map[string]int)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			seen[spec.(*ast.TypeSpec).Name.Name]++
		}
	}
	for _, name := range []string{"XFoo", "YFoo", "User", "Gen1", "Gen2"} {
		require.Equal(t, 1, seen[name], "type %s in\n%s", name, out)
	}
	for name, n := range seen {
		require.Equal(t, 1, n, "type %s declared %d times", name, n)
	}

	require.Regexp(t, `Mine\s+\*YFoo`, out)
	require.Regexp(t, `Theirs\s+\*XFoo`, out)
	require.Regexp(t, `Pair\s+\*Gen2\[int, string\]`, out)
	require.Regexp(t, `type Gen1\[T any\] struct`, out)
	require.Regexp(t, `type Gen2\[K any, V any\] struct`, out)
}

func TestExportExcludesInnerClasses(t *testing.T) {
	t.Parallel()

	d := diagramOf("zoo", `
namespace Zoo
{
	public class Cage
	{
		public Keeper Keeper;
		public Food Lunch;

		public class Keeper
		{
			public Cage Home;
			public Food Meal;
		}
	}

	public class Food { }
}`)
	d.Excluded = []string{"Cage.Keeper"}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, d))

	var doc struct {
		Classes []struct {
			Type  string            `json:"type"`
			Inner []json.RawMessage `json:"inner"`
		} `json:"classes"`
		Relations []map[string]string `json:"relations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Classes, 2)
	require.Equal(t, "Cage", doc.Classes[0].Type)
	require.Empty(t, doc.Classes[0].Inner)
	require.Equal(t, []map[string]string{
		{"from": "Zoo.Cage", "to": "Zoo.Food", "kind": "association"},
	}, doc.Relations)
	require.NotContains(t, buf.String(), "Meal")

	// the diagram's own tree is left alone
	require.Len(t, d.Classes[0].Inner, 1)
}
