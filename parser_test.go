package main

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classdiagramgen/pkg/action/generate"
	. "github.com/cmmoran/classdiagramgen/pkg/parser"
)

const (
	csharpDir = "test/testdata/fixtures/csharp"
	javaDir   = "test/testdata/fixtures/java"
)

func TestGenerate(ttt *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "csharp namespaces generics and properties",
			opts: []Option{
				WithInDir(csharpDir),
				WithLanguage("csharp"),
			},
			want: []string{
				"package Warehouse.Catalog {",
				"class Price <<struct>> {",
				"+ Amount : decimal",
				"+ Tag : Product.Label",
				"class Product {",
				"+ <<get,set>> Sku : string",
				"+ <<get>> Label : Label",
				"+ Variants : Dictionary<string, Product>",
				"class Product.Label {",
				"+ Text : string",

				"package Warehouse.Storage {",
				"class Bin {",
				"+ Bin()",
				"+ Count(product : Product) : int",
				"# Print(format : string, args : object[]) : Label",
				"interface IStock {",
				"+ {abstract} Count(product : Product) : int",
				"class Shelf<T> {",
				"- items : List<T>",
				"+ <<get,set>> Capacity : int",
				"+ <<get>> this[slot : int] : T",
				"+ Shelf(capacity : int)",
				"+ Put(item : T) : void",
				"enum Zone {",
				"+ {static} Cold : int",
				"+ {static} Dry : int",
				"+ {static} Bulk : int",

				"Bin -up-|> Shelf",
				"Bin .up.|> IStock",
				"Bin .down.> Product",
				"Bin .down.> Product.Label",
				"IStock .down.> Product",
				"Product -down-> Product.Label",
				"Product.Label -down-+ Product",
				"Price -down-> Product.Label",
			},
		},
		{
			name: "java package enums and varargs",
			opts: []Option{
				WithInDir(javaDir),
				WithLanguage("java"),
			},
			want: []string{
				"package fleet.core {",
				"abstract class Vehicle {",
				"# {static} count : int",
				"- plate : String",
				"# Vehicle(plate : String)",
				"+ {abstract} range() : double",
				"+ getPlate() : String",
				"+ compareTo(other : Vehicle) : int",
				"enum Cargo {",
				"+ {static} BOXES : int",
				"+ {static} PALLETS : int",
				"+ {static} LIQUID : int",
				"- code : String",
				"~ Cargo(code : String)",
				"interface Loadable {",
				"+ {abstract} load(items : Cargo[]) : void",
				"class Truck {",
				"- cargo : List<Cargo>",
				"~ driver : Driver",
				"+ Truck(plate : String, driver : Driver)",
				"+ range() : double",
				"+ load(items : Cargo[]) : void",

				"Truck -up-|> Vehicle",
				"Truck .up.|> Loadable",
				"Truck -down-> Cargo",
				"Loadable .down.> Cargo",
			},
		},
		{
			name: "java public only with excluded class",
			opts: []Option{
				WithInDir(javaDir),
				WithLanguage("java"),
				WithAccessLevels("public"),
				WithExcludeClasses("Cargo"),
			},
			want: []string{
				"abstract class Vehicle {",
				"'# {static} count : int",
				"'- plate : String",
				"'# Vehicle(plate : String)",
				"+ {abstract} range() : double",
				"+ getPlate() : String",
				"'enum Cargo {",
				"'+ {static} BOXES : int",
				"'+ {static} LIQUID : int",
				"'- code : String",
				"'~ Cargo(code : String)",
				"class Truck {",
				"'- cargo : List<Cargo>",
				"'~ driver : Driver",
				"+ Truck(plate : String, driver : Driver)",
				"+ load(items : Cargo[]) : void",

				"Truck -up-|> Vehicle",
				"Truck .up.|> Loadable",
				"'Truck -down-> Cargo",
				"'Loadable .down.> Cargo",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := NewOptions().Apply(append(tt.opts, WithTitle("test"), WithWorkers(2))...)
			opts.Normalize()
			require.NoError(t, opts.Validate())

			res, err := generate.Build(context.Background(), opts)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, generate.Write(&buf, opts, res))

			want := append([]string{
				"@startuml test",
				"skinparam classAttributeIconSize 0",
			}, tt.want...)
			want = append(want, "@enduml")
			requireLines(t, buf.String(), want)
		})
	}
}

// requireLines checks that every wanted line occurs in the diagram,
// ignoring whitespace. Each match is consumed, so a line expected twice
// must be written twice. Longer lines go first so "A .down.> B" cannot eat
// the front of "A .down.> B.C".
func requireLines(t *testing.T, diagram string, want []string) {
	t.Helper()
	want = slices.Clone(want)
	slices.SortStableFunc(want, func(a, b string) int {
		return len(stripSpace(b)) - len(stripSpace(a))
	})
	rest := stripSpace(diagram)
	for _, line := range want {
		s := stripSpace(line)
		i := strings.Index(rest, s)
		require.GreaterOrEqualf(t, i, 0, "line %q not found in\n%s", line, diagram)
		rest = rest[:i] + rest[i+len(s):]
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
