package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

func TestLookupDialect(ttt *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "csharp", want: "csharp"},
		{in: "CS", want: "csharp"},
		{in: " c# ", want: "csharp"},
		{in: "java", want: "java"},
		{in: "Java", want: "java"},
		{in: "cobol", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			d, err := LookupDialect(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrUnknownLanguage))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, d.Name)
		})
	}
}

func TestDialectHandles(t *testing.T) {
	t.Parallel()
	require.True(t, CSharp.Handles("src/Foo.cs"))
	require.True(t, CSharp.Handles("src/Foo.CS"))
	require.False(t, CSharp.Handles("src/Foo.java"))
	require.True(t, Java.Handles("Foo.java"))
	require.False(t, Java.Handles("Foo"))
	require.Len(t, Dialects(), 2)
}

func TestParseCSharpNamespaces(t *testing.T) {
	t.Parallel()

	src := `
using System;
using System.Collections.Generic;

#region Models
namespace Company.Product
{
	namespace Models
	{
		public class Customer
		{
			public string Name { get; set; }
		}
	}

	class Helper { }
}
#endregion
`
	classes := New(CSharp).Parse(src)
	require.Len(t, classes, 2)

	require.Equal(t, "Customer", classes[0].Name())
	require.Equal(t, "Company.Product.Models", classes[0].Scope)
	require.Equal(t, "Company.Product.Models.Customer", classes[0].QualifiedName())
	require.Equal(t, model.PropertyGet|model.PropertySet, classes[0].Fields[0].Property)

	// a scope is not popped when its block closes
	require.Equal(t, "Helper", classes[1].Name())
	require.Equal(t, "Company.Product.Models", classes[1].Scope)
	require.Equal(t, model.Internal, classes[1].Modifier)
}

func TestParseCSharpFileScopedNamespace(t *testing.T) {
	t.Parallel()

	src := `
namespace Shop.Orders;

public record Ignored(int X);

public sealed class Order : IEntity
{
	private readonly List<Line> lines = new();
	public IReadOnlyList<Line> Lines => lines;
	public Order(Customer customer) { }
}
`
	classes := New(CSharp).Parse(src)
	require.Len(t, classes, 1)
	order := classes[0]
	require.Equal(t, "Shop.Orders", order.Scope)
	require.Equal(t, model.Public|model.Sealed, order.Modifier)
	require.Empty(t, diff([]*model.TypeRef{typ("IEntity")}, order.Inherited))
	require.Len(t, order.Fields, 2)
	require.Equal(t, model.PropertyGet, order.Fields[1].Property)
	require.Len(t, order.Methods, 1)
	require.True(t, order.Methods[0].IsConstructor())
}

func TestParseJava(t *testing.T) {
	t.Parallel()

	src := `
package com.example.shapes;

import java.util.List;

/**
 * A shape.
 */
public abstract class Shape implements Comparable<Shape> {
	protected final String name;
	int sides;

	public Shape(String name) {
		this.name = name;
	}

	public abstract double area();

	@Override
	public int compareTo(Shape other) {
		return Double.compare(area(), other.area());
	}

	static class Registry {
		private static List<Shape> all;
	}
}

interface Drawable {
	void draw(Canvas c);
}
`
	classes := New(Java).Parse(src)
	require.Len(t, classes, 2)

	shape := classes[0]
	require.Equal(t, "com.example.shapes", shape.Scope)
	require.Equal(t, model.Public|model.Abstract, shape.Modifier)
	require.Empty(t, diff([]*model.TypeRef{typ("Comparable", typ("Shape"))}, shape.Inherited))

	require.Len(t, shape.Fields, 2)
	require.Equal(t, model.Protected|model.Final, shape.Fields[0].Modifier)
	require.Equal(t, model.Package, shape.Fields[1].Modifier)

	require.Len(t, shape.Methods, 3)
	require.True(t, shape.Methods[0].IsConstructor())
	require.Equal(t, "area", shape.Methods[1].Name)
	require.Equal(t, "compareTo", shape.Methods[2].Name)

	require.Len(t, shape.Inner, 1)
	registry := shape.Inner[0]
	require.Equal(t, "Shape.Registry", registry.Name())
	require.Equal(t, model.Package|model.Static, registry.Modifier)
	require.Equal(t, "com.example.shapes", registry.Scope)

	drawable := classes[1]
	require.Equal(t, model.CategoryInterface, drawable.Category)
	require.Equal(t, model.Package, drawable.Modifier)
	require.Equal(t, model.Public|model.Abstract, drawable.Methods[0].Modifier)
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()
	require.Empty(t, New(Java).Parse(""))
	require.Empty(t, New(CSharp).Parse("using System; // nothing here"))
}
