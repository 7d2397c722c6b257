package parser

import (
	"regexp"
	"strings"
)

var (
	quoteCharRe    = regexp.MustCompile(`'"'`)
	escapedQuoteRe = regexp.MustCompile(`([^\\]?)\\"`)
	charLiteralRe  = regexp.MustCompile(`'\\?.'`)
	lineCommentRe  = regexp.MustCompile(`//[^\r\n]*`)
	directiveRe    = regexp.MustCompile(`(?m)^[ \t]*#[^\r\n]*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Tokenize strips literals and comments from src and cuts what remains into
// depth-tagged statements. directives additionally drops '#' preprocessor
// lines. Statement text is trimmed and empty statements are discarded.
//
// Braces that survive stripping (inside a construct the stripper does not
// understand) shift every following depth; that is a known limitation of
// working without a real lexer.
func Tokenize(src string, directives bool) []Statement {
	code := quoteCharRe.ReplaceAllString(src, "")
	code = escapedQuoteRe.ReplaceAllString(code, "$1")
	code = charLiteralRe.ReplaceAllString(code, "")
	code = removeEnclosed(code, `"`, `"`)
	code = removeEnclosed(code, "/*", "*/")
	code = lineCommentRe.ReplaceAllString(code, "")
	if directives {
		code = directiveRe.ReplaceAllString(code, "")
	}
	code = whitespaceRe.ReplaceAllString(code, " ")

	out := make([]Statement, 0, 64)
	for _, frag := range SplitWithDepth(code, "{", "}") {
		for _, s := range strings.Split(frag.Text, ";") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			out = append(out, Statement{Text: s, Depth: frag.Depth})
		}
	}
	return out
}

// removeEnclosed deletes every open...close span, pairing each open marker
// with the nearest following close marker. An unterminated span is kept.
func removeEnclosed(text, open, closing string) string {
	var sb strings.Builder
	for {
		i := strings.Index(text, open)
		if i < 0 {
			break
		}
		j := strings.Index(text[i+len(open):], closing)
		if j < 0 {
			break
		}
		sb.WriteString(text[:i])
		text = text[i+len(open)+j+len(closing):]
	}
	sb.WriteString(text)
	return sb.String()
}

// Reader is a forward cursor over tokenized statements. Matchers snapshot
// Position before trying a statement and Seek back on failure.
type Reader struct {
	lines []Statement
	pos   int
}

func NewReader(lines []Statement) *Reader {
	return &Reader{lines: lines}
}

// Read returns the statement at the cursor and advances. It reports false at
// the end of input, which is not an error.
func (r *Reader) Read() (Statement, bool) {
	if r.pos >= len(r.lines) {
		return Statement{}, false
	}
	s := r.lines[r.pos]
	r.pos++
	return s, true
}

// Unread steps the cursor back by one statement.
func (r *Reader) Unread() {
	if r.pos > 0 {
		r.pos--
	}
}

// Peek returns the statement at the cursor without consuming it.
func (r *Reader) Peek() (Statement, bool) {
	if r.pos >= len(r.lines) {
		return Statement{}, false
	}
	return r.lines[r.pos], true
}

func (r *Reader) Position() int { return r.pos }

// Seek moves the cursor; len(lines) is a valid position meaning end of input.
func (r *Reader) Seek(pos int) {
	switch {
	case pos < 0:
		pos = 0
	case pos > len(r.lines):
		pos = len(r.lines)
	}
	r.pos = pos
}

func (r *Reader) AtEnd() bool { return r.pos >= len(r.lines) }

func (r *Reader) Len() int { return len(r.lines) }

// DeeperCount counts the statements following the cursor whose depth is
// greater than depth. The cursor does not move.
func (r *Reader) DeeperCount(depth int) int {
	n := 0
	for i := r.pos; i < len(r.lines) && r.lines[i].Depth > depth; i++ {
		n++
	}
	return n
}

// Skip consumes n statements, stopping at the end of input.
func (r *Reader) Skip(n int) {
	r.Seek(r.pos + n)
}
