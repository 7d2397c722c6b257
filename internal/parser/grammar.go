package parser

import (
	"regexp"
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// -----------------------------------------------------------------------------
// Shared grammar fragments
// -----------------------------------------------------------------------------

const (
	namePat      = `[^\s,:\[\]\(\)<>=]+`
	paramCharPat = `[^:\[\]\(\)<>=]`
	// typeParamPat admits bounds with two levels of nested type arguments,
	// as in "T extends Comparable<List<T>>".
	typeParamPat = `(?:` + paramCharPat + `|<(?:` + paramCharPat + `|<` + paramCharPat + `*>)*>)+`
	typeArgPat   = `[^:\(\)=]+`
	attributePat = `(?:\s*\[[^\[\]]*\]\s*)*`
	annotatePat  = `(?:\s*@` + namePat + `\s*(?:\([^\(\)]*\))?\s*)*`
	varArgPat    = `\s*\.\.\.\s*`
	arrayPat     = `(?:\s*\[[\s,]*\]\s*)*`
	typePat      = namePat + `(?:\s*<` + typeArgPat + `>\s*)?(?:\.` + namePat + `(?:\s*<` + typeArgPat + `>\s*)?)*` + arrayPat
	argModPat    = `this|in|out|ref|params`
)

var (
	modifierPat = `(?:` + strings.Join(model.ModifierWords(), "|") + `)`
	categoryPat = `(?:` + strings.Join(model.CategoryWords(), "|") + `)`

	// argumentPat is the non-capturing form embedded in method and indexer
	// signatures.
	argumentPat = `(?:` + attributePat + annotatePat + `(?:` + modifierPat + `\s+)*(?:(?:` + argModPat + `)\s+)?` +
		`(?:` + typePat + `(?:` + varArgPat + `)?)\s+` + namePat + `(?:\s*=[^,]*)?)`
	argListPat = argumentPat + `?(?:\s*,\s*` + argumentPat + `)*`

	// groups: [1] passing modifier, [2] type, [3] name
	argumentRe = regexp.MustCompile(`^\s*` + attributePat + annotatePat + `(?:` + modifierPat + `\s+)*(?:(` + argModPat + `)\s+)?` +
		`(` + typePat + `(?:` + varArgPat + `)?)\s+(` + namePat + `)(?:\s*=[^,]*)?`)

	// groups: [1] modifiers, [2] category, [3] name with type parameters, [4] inheritance clause
	classRe = regexp.MustCompile(`^\s*` + attributePat + annotatePat + `((?:` + modifierPat + `\s+)*)(` + categoryPat + `)\s+` +
		`(` + namePat + `(?:\s*<` + typeParamPat + `>\s*)?)\s*` +
		`((?:\s*(?::|extends|implements)\s*(?:` + typePat + `(?:\s*,\s*` + typePat + `)*))*)`)

	// Type parameter declarations may come before the return type (Java) or
	// after the name (C#), so both positions are accepted.
	// groups: [1] modifiers, [2] return type, [3] name, [4] arguments
	methodRe = regexp.MustCompile(`^\s*` + attributePat + annotatePat + `((?:` + modifierPat + `\s+)*)(?:<` + typeParamPat + `>\s*)?` +
		`(?:(` + typePat + `)\s+)?(` + namePat + `)\s*(?:<` + typeParamPat + `>\s*)?` +
		`\(\s*(` + argListPat + `)\s*\)`)

	// groups: [1] modifiers, [2] type, [3] name, [4] indexer brackets, [5] tail
	fieldRe = regexp.MustCompile(`^\s*` + attributePat + annotatePat + `((?:` + modifierPat + `\s+)*)(` + typePat + `)\s+(` + namePat + `)\s*` +
		`(\[\s*` + argListPat + `\s*\])?(.*)$`)

	getterRe = regexp.MustCompile(`^\s*(?:` + modifierPat + `\s+)*\s*get\b`)
	setterRe = regexp.MustCompile(`^\s*(?:` + modifierPat + `\s+)*\s*(?:set|init)\b`)

	enumValueRe  = regexp.MustCompile(`^(` + namePat + `)`)
	decorationRe = regexp.MustCompile(`^` + attributePat + annotatePat)

	// bounds and variance on a declared type parameter
	boundRe    = regexp.MustCompile(`\s+(?:extends|super)\b`)
	varianceRe = regexp.MustCompile(`^(?:in|out)\s+`)

	inheritKeywordRe = regexp.MustCompile(`\b(?:extends|implements)\b|:`)
	multiDimRe       = regexp.MustCompile(`\[\s*(?:\s*,\s*)*\s*\]`)
	varArgRe         = regexp.MustCompile(varArgPat)
)
