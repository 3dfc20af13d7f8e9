package table

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/litmap"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/query"
)

const maxTitleWidth = 60

// WorksToTableData converts works to table format. Wide adds the full
// language list, subjects and media type.
func WorksToTableData(works []catalogs.Work, wide bool) Data {
	headers := []string{"ID", "Title", "Authors", "Language", "Downloads"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Languages", "Subjects", "Media Type")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(works))
	for _, w := range works {
		title := w.Title
		if !wide {
			title = Truncate(title, maxTitleWidth)
		}
		row := []string{
			strconv.Itoa(w.ID),
			orDash(title),
			orDash(strings.Join(w.AuthorNames(), "; ")),
			orDash(w.PrimaryLanguage()),
			FormatCount(w.DownloadCount),
		}
		if wide {
			row = append(row,
				orDash(strings.Join(w.Languages, ", ")),
				orDash(strings.Join(w.Subjects, "; ")),
				orDash(w.MediaType),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// AuthorsToTableData converts persons to table format with their life span.
func AuthorsToTableData(persons []catalogs.Person) Data {
	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, []string{
			orDash(p.Name),
			FormatYear(p.BirthYear),
			FormatYear(p.DeathYear),
			orDash(p.Lifespan()),
		})
	}
	return Data{
		Headers:         []string{"Name", "Born", "Died", "Lifespan"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
	}
}

// LanguagesToTableData converts language counts to table format.
func LanguagesToTableData(counts []query.LanguageCount) Data {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Code, orDash(LanguageName(c.Code)), FormatCount(c.Works)})
	}
	return Data{
		Headers:         []string{"Code", "Language", "Works"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// StatsToTableData converts download statistics to a key-value table.
func StatsToTableData(s query.Stats) Data {
	return Data{
		Headers: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Works", FormatCount(s.Count)},
			{"Total downloads", FormatCount(s.Sum)},
			{"Minimum", FormatCount(s.Min)},
			{"Maximum", FormatCount(s.Max)},
			{"Mean", fmt.Sprintf("%.1f", s.Mean)},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// WorkToTableData converts a single work to a property table.
func WorkToTableData(w catalogs.Work) Data {
	authors := make([]string, 0, len(w.Authors))
	for _, p := range w.Authors {
		if span := p.Lifespan(); span != "" {
			authors = append(authors, fmt.Sprintf("%s (%s)", p.Name, span))
			continue
		}
		authors = append(authors, p.Name)
	}

	languages := make([]string, 0, len(w.Languages))
	for _, code := range w.Languages {
		if name := LanguageName(code); name != "" {
			languages = append(languages, fmt.Sprintf("%s (%s)", name, code))
			continue
		}
		languages = append(languages, code)
	}

	formats := make([]string, 0, len(w.Formats))
	for name := range w.Formats {
		formats = append(formats, name)
	}
	slices.Sort(formats)

	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", strconv.Itoa(w.ID)},
			{"Title", orDash(w.Title)},
			{"Authors", orDash(strings.Join(authors, "; "))},
			{"Languages", orDash(strings.Join(languages, ", "))},
			{"Downloads", FormatCount(w.DownloadCount)},
			{"Subjects", orDash(strings.Join(w.Subjects, "; "))},
			{"Bookshelves", orDash(strings.Join(w.Bookshelves, "; "))},
			{"Copyright", formatCopyright(w.Copyright)},
			{"Media Type", orDash(w.MediaType)},
			{"Formats", orDash(strings.Join(formats, ", "))},
		},
	}
}

// RefreshToTableData summarizes a refresh.
func RefreshToTableData(r *litmap.RefreshResult) Data {
	complete := "yes"
	if !r.Snapshot.Complete {
		complete = "no"
	}
	rows := [][]string{
		{"Build", orDash(r.Snapshot.ID)},
		{"Works", FormatCount(r.Snapshot.Works)},
		{"Pages", FormatCount(r.Snapshot.Pages)},
		{"Complete", complete},
		{"Added", FormatCount(r.Changes.Added)},
		{"Updated", FormatCount(r.Changes.Updated)},
		{"Removed", FormatCount(r.Changes.Removed)},
		{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	}
	if r.Snapshot.Error != "" {
		rows = append(rows, []string{"Error", r.Snapshot.Error})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

func formatCopyright(c *bool) string {
	switch {
	case c == nil:
		return "unknown"
	case *c:
		return "yes"
	default:
		return "no"
	}
}
