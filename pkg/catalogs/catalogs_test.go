package catalogs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/litmap/pkg/catalogs"
)

func TestPersonAliveIn(t *testing.T) {
	tests := []struct {
		name   string
		person catalogs.Person
		year   int
		want   bool
	}{
		{"both unknown", catalogs.Person{Name: "Anon"}, 1200, true},
		{"born that year", catalogs.Person{Name: "A", BirthYear: catalogs.Year(1800), DeathYear: catalogs.Year(1850)}, 1800, true},
		{"died that year", catalogs.Person{Name: "A", BirthYear: catalogs.Year(1800), DeathYear: catalogs.Year(1850)}, 1850, true},
		{"before birth", catalogs.Person{Name: "A", BirthYear: catalogs.Year(1800)}, 1799, false},
		{"after death", catalogs.Person{Name: "A", DeathYear: catalogs.Year(1850)}, 1851, false},
		{"unknown death", catalogs.Person{Name: "A", BirthYear: catalogs.Year(1800)}, 2500, true},
		{"unknown birth", catalogs.Person{Name: "A", DeathYear: catalogs.Year(1850)}, 1000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.person.AliveIn(tt.year))
		})
	}
}

func TestPersonLifespan(t *testing.T) {
	assert.Equal(t, "", catalogs.Person{Name: "x"}.Lifespan())
	assert.Equal(t, "1812-1870", catalogs.Person{BirthYear: catalogs.Year(1812), DeathYear: catalogs.Year(1870)}.Lifespan())
	assert.Equal(t, "1812-?", catalogs.Person{BirthYear: catalogs.Year(1812)}.Lifespan())
	assert.Equal(t, "?-1870", catalogs.Person{DeathYear: catalogs.Year(1870)}.Lifespan())
}

func TestWorkLanguages(t *testing.T) {
	w := catalogs.Work{Languages: []string{"en", "FR"}}
	assert.Equal(t, "en", w.PrimaryLanguage())
	assert.True(t, w.HasLanguage("fr"))
	assert.True(t, w.HasLanguage("EN"))
	assert.False(t, w.HasLanguage("de"))
	assert.Equal(t, "", catalogs.Work{}.PrimaryLanguage())
}

func TestWorkCloneIsDeep(t *testing.T) {
	yes := true
	w := catalogs.Work{
		ID:        1,
		Title:     "Dracula",
		Authors:   []catalogs.Person{{Name: "Stoker, Bram", BirthYear: catalogs.Year(1847)}},
		Languages: []string{"en"},
		Formats:   map[string]string{"text/html": "https://example.org/1.html"},
		Copyright: &yes,
	}
	c := w.Clone()
	require.True(t, w.Equal(c))

	*c.Authors[0].BirthYear = 1900
	c.Languages[0] = "de"
	c.Formats["text/html"] = "changed"
	*c.Copyright = false

	assert.Equal(t, 1847, *w.Authors[0].BirthYear)
	assert.Equal(t, "en", w.Languages[0])
	assert.Equal(t, "https://example.org/1.html", w.Formats["text/html"])
	assert.True(t, *w.Copyright)
	assert.False(t, w.Equal(c))
}

func TestWorkAuthorNamesSkipsNameless(t *testing.T) {
	w := catalogs.Work{Authors: []catalogs.Person{{Name: "A"}, {}, {Name: "B"}}}
	assert.Equal(t, []string{"A", "B"}, w.AuthorNames())
}

func TestPage(t *testing.T) {
	var nilPage *catalogs.Page
	assert.True(t, nilPage.IsLast())
	assert.True(t, nilPage.Empty())

	p := &catalogs.Page{Works: []catalogs.Work{{ID: 1}}, Next: "https://example.org/books/?page=2"}
	assert.False(t, p.IsLast())
	assert.False(t, p.Empty())
}

func TestSnapshotIsImmutable(t *testing.T) {
	works := []catalogs.Work{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	s := catalogs.NewSnapshot(works, catalogs.WithSnapshotID("build-1"), catalogs.WithPages(2))

	works[0].Title = "mutated input"
	got := s.Works()
	got[1].Title = "mutated output"

	again := s.Works()
	assert.Equal(t, "A", again[0].Title)
	assert.Equal(t, "B", again[1].Title)
	assert.Equal(t, "build-1", s.ID())
	assert.Equal(t, 2, s.Pages())
	assert.True(t, s.Complete())
	assert.NoError(t, s.Err())
	assert.False(t, s.FetchedAt().IsZero())
}

func TestSnapshotLookup(t *testing.T) {
	s := catalogs.NewSnapshot([]catalogs.Work{{ID: 10, Title: "first"}, {ID: 10, Title: "dup"}, {ID: 11}})
	w, ok := s.Work(10)
	require.True(t, ok)
	assert.Equal(t, "first", w.Title)

	_, ok = s.Work(99)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Len())

	var seen []int
	s.Each(func(w catalogs.Work) bool {
		seen = append(seen, w.ID)
		return len(seen) < 2
	})
	assert.Equal(t, []int{10, 10}, seen)
}

func TestSnapshotTruncation(t *testing.T) {
	cause := errors.New("page 3 failed")
	s := catalogs.NewSnapshot(nil, catalogs.WithTruncation(cause), catalogs.WithPages(2))
	assert.False(t, s.Complete())
	assert.ErrorIs(t, s.Err(), cause)
	assert.Equal(t, []catalogs.Work{}, s.Works())

	info := s.Info()
	assert.Equal(t, "page 3 failed", info.Error)
	assert.Equal(t, 0, info.Works)
	assert.False(t, info.Complete)
}

func TestNilSnapshot(t *testing.T) {
	var s *catalogs.Snapshot
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Works())
	_, ok := s.Work(1)
	assert.False(t, ok)
}
