package output

import (
	"io"

	"github.com/agentstation/litmap/internal/cmd/table"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/query"
)

// Write renders rows for table formats and raw for serialized formats.
func Write(w io.Writer, format Format, rows Data, raw any) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, rows)
	}
	return NewFormatter(format).Format(w, raw)
}

// Works writes a list of works.
func Works(w io.Writer, format Format, works []catalogs.Work) error {
	return Write(w, format, table.WorksToTableData(works, format == FormatWide), works)
}

// Authors writes a list of persons.
func Authors(w io.Writer, format Format, persons []catalogs.Person) error {
	return Write(w, format, table.AuthorsToTableData(persons), persons)
}

// Languages writes language counts.
func Languages(w io.Writer, format Format, counts []query.LanguageCount) error {
	return Write(w, format, table.LanguagesToTableData(counts), counts)
}

// Stats writes download statistics.
func Stats(w io.Writer, format Format, stats query.Stats) error {
	return Write(w, format, table.StatsToTableData(stats), stats)
}

// Work writes a single work.
func Work(w io.Writer, format Format, work catalogs.Work) error {
	return Write(w, format, table.WorkToTableData(work), work)
}
