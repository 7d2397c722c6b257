package parser

import (
	"strings"
)

// Statement is one brace/semicolon delimited fragment of source text together
// with the brace depth it starts at.
type Statement struct {
	Text  string
	Depth int
}

// SplitWithDepth cuts text at every nest and unnest marker and tags each piece
// with its nesting depth: "A{B}C" yields A@0, B@1, C@0. Unbalanced input
// yields negative or runaway depths rather than an error.
func SplitWithDepth(text, nest, unnest string) []Statement {
	words := strings.Split(text, nest)
	out := make([]Statement, 0, len(words))
	depth := 0
	for _, w := range words {
		for _, sub := range strings.Split(w, unnest) {
			out = append(out, Statement{Text: sub, Depth: depth})
			depth--
		}
		// one for the nest marker, one for the extra decrement above
		depth += 2
	}
	return out
}

// Merge is the inverse of SplitWithDepth: it re-inserts nest or unnest
// markers wherever the depth changes between neighbouring pieces.
func Merge(parts []Statement, nest, unnest string) string {
	if len(parts) == 0 {
		return ""
	}
	var sb strings.Builder
	prev := parts[0]
	sb.WriteString(prev.Text)
	for _, p := range parts[1:] {
		switch {
		case prev.Depth < p.Depth:
			sb.WriteString(nest)
		case prev.Depth > p.Depth:
			sb.WriteString(unnest)
		}
		sb.WriteString(p.Text)
		prev = p
	}
	return sb.String()
}

// SplitTopLevel splits text on sep, ignoring separators nested inside any
// open/close pair. Pieces are returned untrimmed.
func SplitTopLevel(text string, sep byte, pairs ...[2]byte) []string {
	out := make([]string, 0, 4)
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case isOpen(ch, pairs):
			depth++
		case isClose(ch, pairs):
			if depth > 0 {
				depth--
			}
		case ch == sep && depth == 0:
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	return append(out, text[start:])
}

var (
	genericPair = [2]byte{'<', '>'}
	parenPair   = [2]byte{'(', ')'}
)

func isOpen(ch byte, pairs [][2]byte) bool {
	for _, p := range pairs {
		if p[0] == ch {
			return true
		}
	}
	return false
}

func isClose(ch byte, pairs [][2]byte) bool {
	for _, p := range pairs {
		if p[1] == ch {
			return true
		}
	}
	return false
}
