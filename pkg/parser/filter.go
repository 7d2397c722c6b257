package parser

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// SplitList splits every value on commas, spaces and pipes and drops empty
// pieces, so "public, protected|internal" and three separate values read the
// same.
func SplitList(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == '|' || r == ' ' || r == '\t'
		})...)
	}
	return out
}

// ParseAccessLevels ORs the access levels named in words. Unknown and
// non-access words are ignored; when no access level is named the result
// is every access level.
func ParseAccessLevels(words ...string) model.Modifier {
	var mod model.Modifier
	for _, w := range SplitList(words...) {
		if m, ok := model.ParseModifier(strings.ToLower(w)); ok {
			mod |= m.Access()
		}
	}
	if mod == model.None {
		return model.AccessLevels
	}
	return mod
}

// PathFilter selects source paths by glob. Patterns are matched against the
// slash-separated path relative to the walk root and against the base name;
// "*" stops at a slash, "**" does not.
type PathFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewPathFilter(include, exclude []string) (*PathFilter, error) {
	f := &PathFilter{}
	var err error
	if f.include, err = compileGlobs(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileGlobs(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Excluded reports whether rel matches an exclude pattern.
func (f *PathFilter) Excluded(rel string) bool {
	return matchAny(f.exclude, rel)
}

// Match reports whether the file at rel passes both pattern lists. An empty
// include list accepts everything.
func (f *PathFilter) Match(rel string) bool {
	if f.Excluded(rel) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, rel)
}

func matchAny(globs []glob.Glob, rel string) bool {
	base := path.Base(rel)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}
