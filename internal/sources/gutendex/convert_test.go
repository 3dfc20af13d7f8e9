package gutendex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWork(t *testing.T) {
	birth := 1900
	w := toWork(bookResponse{
		ID:            7,
		Title:         "  Title  ",
		Authors:       []personResponse{{Name: " Someone ", BirthYear: &birth}, {Name: ""}},
		Languages:     []string{"en", " ", "de"},
		DownloadCount: -5,
		Formats:       map[string]string{},
	})

	assert.Equal(t, 7, w.ID)
	assert.Equal(t, "Title", w.Title)
	assert.Equal(t, []string{"en", "de"}, w.Languages)
	assert.Equal(t, 0, w.DownloadCount)
	assert.Nil(t, w.Formats)
	assert.Len(t, w.Authors, 2)
	assert.Equal(t, "Someone", w.Authors[0].Name)
	assert.Equal(t, 1900, *w.Authors[0].BirthYear)
	assert.Nil(t, w.Authors[0].DeathYear)
}

func TestToPage(t *testing.T) {
	next := "https://gutendex.com/books/?page=3"
	p := toPage(&listResponse{Count: 70, Next: &next, Results: []bookResponse{{ID: 1}}})
	assert.Equal(t, next, p.Next)
	assert.Empty(t, p.Previous)
	assert.Equal(t, 70, p.Count)
	assert.Len(t, p.Works, 1)

	empty := toPage(&listResponse{})
	assert.True(t, empty.IsLast())
	assert.NotNil(t, empty.Works)
	assert.Empty(t, empty.Works)
}
