package query

import (
	"sort"
	"strings"

	"github.com/agentstation/litmap/pkg/catalogs"
)

// LanguageCount is a language code and how many works list it.
type LanguageCount struct {
	Code  string `json:"code" yaml:"code"`
	Works int    `json:"works" yaml:"works"`
}

// FilterLanguage returns the works listing code, ignoring case. An empty
// code returns every work.
func FilterLanguage(works []catalogs.Work, code string) []catalogs.Work {
	code = strings.TrimSpace(code)
	if code == "" {
		return catalogs.CloneWorks(nonNil(works))
	}
	out := []catalogs.Work{}
	for _, w := range works {
		if w.HasLanguage(code) {
			out = append(out, w.Clone())
		}
	}
	return out
}

// Languages returns the distinct language codes in works, lower-cased and
// sorted, with the number of works listing each.
func Languages(works []catalogs.Work) []LanguageCount {
	counts := make(map[string]int)
	for _, w := range works {
		listed := make(map[string]bool, len(w.Languages))
		for _, lang := range w.Languages {
			code := strings.ToLower(lang)
			if code == "" || listed[code] {
				continue
			}
			listed[code] = true
			counts[code]++
		}
	}

	out := make([]LanguageCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, LanguageCount{Code: code, Works: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// FindWork returns the first work with id.
func FindWork(works []catalogs.Work, id int) (catalogs.Work, bool) {
	for _, w := range works {
		if w.ID == id {
			return w.Clone(), true
		}
	}
	return catalogs.Work{}, false
}

func nonNil(works []catalogs.Work) []catalogs.Work {
	if works == nil {
		return []catalogs.Work{}
	}
	return works
}
