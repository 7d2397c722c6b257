package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

func TestTryEnumValues(ttt *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{name: "plain", code: "A,B,C,", want: []string{"A", "B", "C"}},
		{name: "initializers", code: "A = 1,B = 2,C = 4", want: []string{"A", "B", "C"}},
		{name: "constructor args", code: "A(1),B(2),C(4)", want: []string{"A", "B", "C"}},
		{name: "string args", code: `A(1, "a"),B(2, "b"),C(4, "c")`, want: []string{"A", "B", "C"}},
		{
			name: "bodies",
			code: "A{ String func() { return null; } },B{ String func() { return null; } },C{ String func() { return null; } }",
			want: []string{"A", "B", "C"},
		},
		{
			name: "args and bodies",
			code: `A(1, "a"){ String func() { return null; } },B(1, "b"){ String func() { return null; } },C(1, "c"){ String func() { return null; } }`,
			want: []string{"A", "B", "C"},
		},
		{name: "attributes", code: "[Description] A, [Obsolete] B", want: []string{"A", "B"}},
		{name: "annotated", code: "@Deprecated A, B", want: []string{"A", "B"}},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := readerFrom(tt.code)
			got := make([]string, 0)
			for !r.AtEnd() {
				values, ok := tryEnumValues(r, -1)
				if !ok {
					r.Skip(1)
					continue
				}
				for _, v := range values {
					require.Equal(t, model.Public|model.Static, v.Modifier)
					require.Equal(t, "int", v.Type.Name)
					got = append(got, v.Name)
				}
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEnumDeclaration(t *testing.T) {
	t.Parallel()

	classes := New(CSharp).Parse("enum E { A, B = 2, C }")
	require.Len(t, classes, 1)

	want := model.NewClass(model.Internal, model.CategoryEnum, "", typ("E"), nil)
	for _, n := range []string{"A", "B", "C"} {
		want.Fields = append(want.Fields, &model.Field{Modifier: model.Public | model.Static, Name: n, Type: typ("int")})
	}
	require.Empty(t, diff(want, classes[0]))
}
