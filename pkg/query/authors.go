// Package query answers derived questions over a catalog snapshot: author
// de-duplication, liveness in a year, popularity rankings, language
// partitioning and download statistics.
package query

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

// UniqueAuthors returns every named author in works, keeping the first
// occurrence of each exact name in first-seen order.
func UniqueAuthors(works []catalogs.Work) []catalogs.Person {
	return uniqueAuthorsWhere(works, nil)
}

// AliveIn returns the unique authors who could have been alive in year.
func AliveIn(works []catalogs.Work, year int) []catalogs.Person {
	return uniqueAuthorsWhere(works, func(p catalogs.Person) bool {
		return p.AliveIn(year)
	})
}

// FindAuthors returns the unique authors whose name contains fragment,
// ignoring case.
func FindAuthors(works []catalogs.Work, fragment string) ([]catalogs.Person, error) {
	fragment = strings.TrimSpace(fragment)
	if err := validation.Validate(fragment, validation.Required); err != nil {
		return nil, errors.WrapValidation("fragment", err)
	}
	needle := strings.ToLower(fragment)
	return uniqueAuthorsWhere(works, func(p catalogs.Person) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

// uniqueAuthorsWhere de-duplicates by name before applying keep, so the
// first occurrence of a name decides whether it is kept.
func uniqueAuthorsWhere(works []catalogs.Work, keep func(catalogs.Person) bool) []catalogs.Person {
	seen := make(map[string]struct{})
	out := []catalogs.Person{}
	for _, w := range works {
		for _, p := range w.Authors {
			if p.Name == "" {
				continue
			}
			if _, dup := seen[p.Name]; dup {
				continue
			}
			seen[p.Name] = struct{}{}
			if keep == nil || keep(p) {
				out = append(out, p.Clone())
			}
		}
	}
	return out
}
