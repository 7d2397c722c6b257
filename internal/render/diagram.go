package render

import (
	"github.com/cmmoran/classdiagramgen/internal/model"
	"github.com/cmmoran/classdiagramgen/internal/relation"
)

// Diagram is everything a renderer needs. Excluded classes are still
// written, but commented out, and the relation set is never altered by the
// filters.
type Diagram struct {
	Title     string
	Classes   model.Classes
	Relations []relation.Relation
	// AccessFilter selects the members written live; members whose access
	// bits fall outside it are commented out.
	AccessFilter model.Modifier
	// Excluded holds class names (Class.Name) to comment out.
	Excluded []string
	// GoPackage names the package of generated Go stubs.
	GoPackage string
}

func (d Diagram) isExcluded(c *model.Class) bool {
	for _, name := range d.Excluded {
		if name == c.Name() {
			return true
		}
	}
	return false
}

func (d Diagram) accepts(mod model.Modifier) bool {
	filter := d.AccessFilter
	if filter == model.None {
		filter = model.AccessLevels
	}
	return mod&filter&model.AccessLevels != model.None
}
