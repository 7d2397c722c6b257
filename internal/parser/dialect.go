package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cmmoran/classdiagramgen/internal/model"
)

// ErrUnknownLanguage is returned by LookupDialect for an unsupported name.
var ErrUnknownLanguage = errors.New("unknown language")

// Dialect holds everything that differs between the supported source
// languages. The grammar itself is shared.
type Dialect struct {
	Name       string
	Aliases    []string
	Extensions []string
	// DefaultAccess applies to declarations without an access keyword.
	DefaultAccess model.Modifier
	// ScopeKeyword introduces a namespace or package declaration.
	ScopeKeyword string
	// NestedScopes joins a scope declared inside another scope block to its
	// parent: namespace A { namespace B { } } is scope A.B.
	NestedScopes bool
	// Directives strips '#' preprocessor lines before tokenizing.
	Directives bool
}

var (
	CSharp = Dialect{
		Name:          "csharp",
		Aliases:       []string{"cs", "c#"},
		Extensions:    []string{".cs"},
		DefaultAccess: model.Internal,
		ScopeKeyword:  "namespace",
		NestedScopes:  true,
		Directives:    true,
	}
	Java = Dialect{
		Name:          "java",
		Extensions:    []string{".java"},
		DefaultAccess: model.Package,
		ScopeKeyword:  "package",
	}

	dialects = []Dialect{CSharp, Java}
)

// Dialects lists the supported dialects.
func Dialects() []Dialect {
	out := make([]Dialect, len(dialects))
	copy(out, dialects)
	return out
}

// LookupDialect finds a dialect by name or alias, case-insensitively.
func LookupDialect(name string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range dialects {
		if d.Name == key {
			return d, nil
		}
		for _, a := range d.Aliases {
			if a == key {
				return d, nil
			}
		}
	}
	return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// Handles reports whether path carries one of the dialect's extensions.
func (d Dialect) Handles(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range d.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (d Dialect) String() string { return d.Name }

// groups: [1] keyword, [2] scope name
var scopeRe = regexp.MustCompile(`^\s*(namespace|package)\s+(` + namePat + `)`)

// scopeName returns the scope declared by text, if any.
func (d Dialect) scopeName(text string) (string, bool) {
	g := scopeRe.FindStringSubmatch(text)
	if g == nil || g[1] != d.ScopeKeyword {
		return "", false
	}
	return g[2], true
}
