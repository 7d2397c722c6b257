package parser

import (
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// ParseType parses a type expression such as "Outer<int>.Inner<List<string>[]>[,]"
// into a TypeRef tree.
//
//   - Outer dotted segments keep their names but lose their own type
//     arguments: only the last segment's arity matters for matching.
//   - Each "[]" group raises the array rank of the innermost type open at
//     that position, so "List<string[]>" ranks string and "List<string>[]"
//     ranks List. "[,]" counts as rank 2, and a trailing "..." as rank 1.
//   - Blank text yields a placeholder TypeRef with an empty name, never nil.
func ParseType(text string) *model.TypeRef {
	text = normalizeArrays(text)

	segments := make([]string, 0, 2)
	for _, s := range SplitTopLevel(text, '.', genericPair) {
		if strings.TrimSpace(s) != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return &model.TypeRef{}
	}

	outer := make([]string, 0, len(segments)-1)
	for _, s := range segments[:len(segments)-1] {
		outer = append(outer, strings.TrimSpace(stripTypeArgs(s)))
	}

	words := typeWords(segments[len(segments)-1])
	if len(words) == 0 {
		return &model.TypeRef{}
	}

	rootName := words[0].Text
	if len(outer) > 0 {
		rootName = strings.Join(outer, ".") + "." + rootName
	}
	root := model.NewWorkingType(rootName)
	rootDepth := words[0].Depth

	for _, w := range words[1:] {
		depth := w.Depth - rootDepth
		switch {
		case w.Text == "]":
			root.LastAt(depth).ArrayRank++
		case strings.HasPrefix(w.Text, "."):
			// Outer<X>.Inner nested inside generic arguments
			t := root.LastAt(depth)
			t.Name += w.Text
			t.TypeArgs = nil
		default:
			root.LastAt(depth - 1).AddArg(w.Text)
		}
	}

	return root.Freeze()
}

// typeWords depth-tags a single type segment on '<' and '>' and splits every
// piece on ',' and '['. A lone "]" word marks one array rank.
func typeWords(segment string) []Statement {
	words := make([]Statement, 0, 8)
	for _, part := range SplitWithDepth(segment, "<", ">") {
		for _, byComma := range strings.Split(part.Text, ",") {
			for _, w := range strings.Split(byComma, "[") {
				w = strings.TrimSpace(w)
				if w == "" {
					continue
				}
				words = append(words, Statement{Text: w, Depth: part.Depth})
			}
		}
	}
	return words
}

// stripTypeArgs keeps only the depth-0 text of a segment: "Outer<int>" -> "Outer".
func stripTypeArgs(segment string) string {
	parts := SplitWithDepth(segment, "<", ">")
	kept := make([]Statement, 0, len(parts))
	for _, p := range parts {
		if p.Depth == 0 {
			kept = append(kept, p)
		}
	}
	return Merge(kept, "<", ">")
}

// normalizeArrays rewrites "..." to "[] " and "[,,]" to "[][][]". The
// space keeps a following argument name apart from its type.
func normalizeArrays(text string) string {
	text = varArgRe.ReplaceAllString(text, "[] ")
	return multiDimRe.ReplaceAllStringFunc(text, func(m string) string {
		return "[" + strings.Repeat("][", strings.Count(m, ",")) + "]"
	})
}
