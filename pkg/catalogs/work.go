// Package catalogs defines the literature catalog data model: works, the
// persons credited on them, pages returned by the remote catalog, and the
// immutable snapshots assembled from those pages.
package catalogs

import (
	"maps"
	"slices"
	"strings"
)

// Work is a single catalog entry.
type Work struct {
	ID            int               `json:"id" yaml:"id"`                                       // Unique, stable identifier
	Title         string            `json:"title" yaml:"title"`                                 // Display title
	Authors       []Person          `json:"authors" yaml:"authors"`                             // Credited authors, in remote order
	Languages     []string          `json:"languages" yaml:"languages"`                         // Language codes, first is primary
	DownloadCount int               `json:"download_count" yaml:"download_count"`               // Popularity measure
	Formats       map[string]string `json:"formats,omitempty" yaml:"formats,omitempty"`         // Format name to URL
	Subjects      []string          `json:"subjects,omitempty" yaml:"subjects,omitempty"`       // Subject headings
	Bookshelves   []string          `json:"bookshelves,omitempty" yaml:"bookshelves,omitempty"` // Curated shelves
	Copyright     *bool             `json:"copyright,omitempty" yaml:"copyright,omitempty"`     // nil when unknown
	MediaType     string            `json:"media_type,omitempty" yaml:"media_type,omitempty"`   // e.g. "Text"
}

// PrimaryLanguage returns the first language code, or "" when none is listed.
func (w Work) PrimaryLanguage() string {
	if len(w.Languages) == 0 {
		return ""
	}
	return w.Languages[0]
}

// HasLanguage reports whether the work lists code, ignoring case.
func (w Work) HasLanguage(code string) bool {
	for _, lang := range w.Languages {
		if strings.EqualFold(lang, code) {
			return true
		}
	}
	return false
}

// AuthorNames returns the names of the credited authors that have one.
func (w Work) AuthorNames() []string {
	names := make([]string, 0, len(w.Authors))
	for _, p := range w.Authors {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}

// Clone returns a deep copy of the work.
func (w Work) Clone() Work {
	c := w
	c.Authors = clonePersons(w.Authors)
	c.Languages = slices.Clone(w.Languages)
	c.Subjects = slices.Clone(w.Subjects)
	c.Bookshelves = slices.Clone(w.Bookshelves)
	if w.Formats != nil {
		c.Formats = maps.Clone(w.Formats)
	}
	if w.Copyright != nil {
		v := *w.Copyright
		c.Copyright = &v
	}
	return c
}

// Equal reports whether two works carry the same data.
func (w Work) Equal(o Work) bool {
	if w.ID != o.ID || w.Title != o.Title || w.DownloadCount != o.DownloadCount || w.MediaType != o.MediaType {
		return false
	}
	if !slices.EqualFunc(w.Authors, o.Authors, Person.Equal) {
		return false
	}
	if !slices.Equal(w.Languages, o.Languages) ||
		!slices.Equal(w.Subjects, o.Subjects) ||
		!slices.Equal(w.Bookshelves, o.Bookshelves) {
		return false
	}
	if !maps.Equal(w.Formats, o.Formats) {
		return false
	}
	return equalPtr(w.Copyright, o.Copyright)
}

// CloneWorks deep-copies a slice of works. Returns nil for nil input.
func CloneWorks(works []Work) []Work {
	if works == nil {
		return nil
	}
	out := make([]Work, len(works))
	for i, w := range works {
		out[i] = w.Clone()
	}
	return out
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
