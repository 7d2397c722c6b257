package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

func TestParseType(ttt *testing.T) {
	tests := []struct {
		name string
		in   string
		want *model.TypeRef
	}{
		{name: "plain", in: "string", want: typ("string")},
		{name: "generic", in: "List<string>", want: typ("List", typ("string"))},
		{name: "spaced generic", in: "List < List < int > >", want: typ("List", typ("List", typ("int")))},
		{name: "two args", in: "Dictionary<string,int>", want: typ("Dictionary", typ("string"), typ("int"))},
		{
			name: "deep generic",
			in:   "Dictionary<List<Dictionary<List<string>, int>>, Dictionary<int, List<int>>>",
			want: typ("Dictionary",
				typ("List", typ("Dictionary", typ("List", typ("string")), typ("int"))),
				typ("Dictionary", typ("int"), typ("List", typ("int")))),
		},
		{name: "array", in: "string[]", want: arr("string", 1)},
		{name: "generic array", in: "List<string>[]", want: arr("List", 1, typ("string"))},
		{name: "spaced arrays", in: "List < List < int [ ] > > [ ]", want: arr("List", 1, typ("List", arr("int", 1)))},
		{name: "array args", in: "Dictionary<string[],int[]>[]", want: arr("Dictionary", 1, arr("string", 1), arr("int", 1))},
		{
			name: "deep arrays",
			in:   "Dictionary < List<Dictionary<List<string>, int>> [] , Dictionary<int[], List<int>[]> > [ ]",
			want: arr("Dictionary", 1,
				arr("List", 1, typ("Dictionary", typ("List", typ("string")), typ("int"))),
				typ("Dictionary", arr("int", 1), arr("List", 1, typ("int")))),
		},
		{name: "jagged 2", in: "string[][]", want: arr("string", 2)},
		{name: "jagged 3", in: "string[][][]", want: arr("string", 3)},
		{name: "varargs", in: "string...", want: arr("string", 1)},
		{name: "array varargs", in: "string[] ...", want: arr("string", 2)},
		{name: "generic varargs", in: "List<string> ...", want: arr("List", 1, typ("string"))},
		{name: "generic array varargs", in: "List<string>[] ...", want: arr("List", 2, typ("string"))},
		{name: "multi dimensional", in: "int[,]", want: arr("int", 2)},
		{name: "mixed dimensions", in: "string[][,,][]", want: arr("string", 5)},
		{name: "nested type", in: "Outer.Inner", want: typ("Outer.Inner")},
		{name: "outer args dropped", in: "Outer<int>.Inner", want: typ("Outer.Inner")},
		{name: "inner args kept", in: "Outer<string>.Inner<double>", want: typ("Outer.Inner", typ("double"))},
		{name: "nested type as argument", in: "List<Outer<int>.Inner>", want: typ("List", typ("Outer.Inner"))},
		{name: "wildcard", in: "List < ? super T >", want: typ("List", typ("? super T"))},
		{name: "blank", in: "   ", want: &model.TypeRef{}},
	}
	for _, tt := range tests {
		tt := tt
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseType(tt.in)
			require.Empty(t, diff(tt.want, got))
		})
	}
}

func TestParseTypeRoundTrip(ttt *testing.T) {
	inputs := []string{
		"int",
		"List<string>[]",
		"Dictionary<string[],List<Foo<int>>>[][]",
		"Outer.Inner<T>",
	}
	for _, in := range inputs {
		in := in
		ttt.Run(in, func(t *testing.T) {
			t.Parallel()
			first := ParseType(in)
			require.Equal(t, in, first.String())
			require.Empty(t, diff(first, ParseType(first.String())))
		})
	}
}
