package gutendex

import (
	"strings"

	"github.com/agentstation/litmap/pkg/catalogs"
)

// toPage converts a list response to a catalogs.Page.
func toPage(r *listResponse) *catalogs.Page {
	page := &catalogs.Page{
		Count: r.Count,
		Works: make([]catalogs.Work, 0, len(r.Results)),
	}
	if r.Next != nil {
		page.Next = *r.Next
	}
	if r.Previous != nil {
		page.Previous = *r.Previous
	}
	for _, b := range r.Results {
		page.Works = append(page.Works, toWork(b))
	}
	return page
}

// toWork converts a book response to a catalogs.Work. Languages keep the
// remote order; negative download counts are clamped to zero.
func toWork(b bookResponse) catalogs.Work {
	w := catalogs.Work{
		ID:            b.ID,
		Title:         strings.TrimSpace(b.Title),
		Authors:       make([]catalogs.Person, 0, len(b.Authors)),
		Languages:     make([]string, 0, len(b.Languages)),
		DownloadCount: max(b.DownloadCount, 0),
		Subjects:      b.Subjects,
		Bookshelves:   b.Bookshelves,
		Copyright:     b.Copyright,
		MediaType:     b.MediaType,
	}
	if len(b.Formats) > 0 {
		w.Formats = b.Formats
	}
	for _, p := range b.Authors {
		w.Authors = append(w.Authors, catalogs.Person{
			Name:      strings.TrimSpace(p.Name),
			BirthYear: p.BirthYear,
			DeathYear: p.DeathYear,
		})
	}
	for _, lang := range b.Languages {
		if lang = strings.TrimSpace(lang); lang != "" {
			w.Languages = append(w.Languages, lang)
		}
	}
	return w
}
