package parser

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

var equateEmpty = cmpopts.EquateEmpty()

func typ(name string, args ...*model.TypeRef) *model.TypeRef {
	return &model.TypeRef{Name: name, TypeArgs: args}
}

func arr(name string, rank int, args ...*model.TypeRef) *model.TypeRef {
	return &model.TypeRef{Name: name, TypeArgs: args, ArrayRank: rank}
}

func arg(t *model.TypeRef, name string) *model.Argument {
	return &model.Argument{Type: t, Name: name}
}

func argMod(mod model.ArgumentModifier, t *model.TypeRef, name string) *model.Argument {
	return &model.Argument{Modifier: mod, Type: t, Name: name}
}

func readerFrom(code string) *Reader {
	return NewReader(Tokenize(code, true))
}

func diff(want, got any) string {
	return cmp.Diff(want, got, equateEmpty)
}

const sampleClass = `
using System;

public static class MainClass
{
	private static readonly string logText = "Output";
	
	public static void Main(string args)
	{
		for(var i = 0; i < 10; i++)
		{
			Output(i);
		}
	}
	
	public static string LogText { get => logText; } 
	
	private static int Output ( int x )
	{
		Console.WriteLine(LogText + x);
		return x;
	}
}
`
