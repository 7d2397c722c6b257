package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/classdiagramgen/internal/model"
	"github.com/cmmoran/classdiagramgen/internal/relation"
)

// ErrUnknownFormat is returned for an output format that has no renderer.
var ErrUnknownFormat = errors.New("unknown format")

type Format string

const (
	FormatPlantUML Format = "puml"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatGo       Format = "go"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatPlantUML, FormatYAML, FormatJSON, FormatGo}
}

// ParseFormat accepts a format name or a common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "puml", "plantuml", "uml":
		return FormatPlantUML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "go":
		return FormatGo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file extension conventionally used for f.
func (f Format) Extension() string {
	return "." + string(f)
}

// Render writes d in format f.
func Render(w io.Writer, f Format, d Diagram) error {
	switch f {
	case FormatPlantUML:
		return PlantUML(w, d)
	case FormatYAML, FormatJSON:
		return Export(w, d, f)
	case FormatGo:
		return GoStubs(w, d.GoPackage, d.Classes)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Document is the serialized form of a diagram.
type Document struct {
	Title     string         `json:"title" yaml:"title"`
	Classes   model.Classes  `json:"classes" yaml:"classes"`
	Relations []RelationDoc  `json:"relations" yaml:"relations"`
	Summary   map[string]int `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// RelationDoc names both ends of a relation by qualified name.
type RelationDoc struct {
	From string        `json:"from" yaml:"from"`
	To   string        `json:"to" yaml:"to"`
	Kind relation.Kind `json:"kind" yaml:"kind"`
}

// NewDocument converts d, dropping excluded classes at any depth together
// with their inner classes and any relation that touches one of them.
func NewDocument(d Diagram) Document {
	kept := make(map[*model.Class]bool)
	doc := Document{
		Title:     d.Title,
		Classes:   d.keptClasses(d.Classes, kept),
		Relations: make([]RelationDoc, 0, len(d.Relations)),
		Summary:   make(map[string]int),
	}
	for _, r := range d.Relations {
		if r.From == r.To || !kept[r.From] || !kept[r.To] {
			continue
		}
		doc.Relations = append(doc.Relations, RelationDoc{
			From: r.From.QualifiedName(),
			To:   r.To.QualifiedName(),
			Kind: r.Kind,
		})
		doc.Summary[r.Kind.String()]++
	}
	return doc
}

// keptClasses returns classes without the excluded ones. A class whose
// inner list shrinks is copied so the caller's tree stays untouched.
func (d Diagram) keptClasses(classes model.Classes, kept map[*model.Class]bool) model.Classes {
	out := make(model.Classes, 0, len(classes))
	for _, c := range classes {
		if d.isExcluded(c) {
			continue
		}
		kept[c] = true
		inner := d.keptClasses(c.Inner, kept)
		if len(inner) != len(c.Inner) {
			cp := *c
			cp.Inner = inner
			out = append(out, &cp)
			continue
		}
		out = append(out, c)
	}
	return out
}

// Export writes d as YAML or JSON.
func Export(w io.Writer, d Diagram, f Format) error {
	doc := NewDocument(d)
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
