package catalogs

import (
	"strconv"
)

// Person is an author credited on a work. Unknown years are nil.
type Person struct {
	Name      string `json:"name" yaml:"name"`
	BirthYear *int   `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`
	DeathYear *int   `json:"death_year,omitempty" yaml:"death_year,omitempty"`
}

// AliveIn reports whether the person could have been alive during year.
// Unknown bounds never exclude: a person with no known years is alive in
// every year.
func (p Person) AliveIn(year int) bool {
	if p.BirthYear != nil && *p.BirthYear > year {
		return false
	}
	if p.DeathYear != nil && *p.DeathYear < year {
		return false
	}
	return true
}

// Lifespan formats the known years as "1812-1870", "1812-?", "?-1870" or "".
func (p Person) Lifespan() string {
	if p.BirthYear == nil && p.DeathYear == nil {
		return ""
	}
	return yearOrUnknown(p.BirthYear) + "-" + yearOrUnknown(p.DeathYear)
}

// Equal reports whether two persons carry the same data.
func (p Person) Equal(o Person) bool {
	return p.Name == o.Name && equalPtr(p.BirthYear, o.BirthYear) && equalPtr(p.DeathYear, o.DeathYear)
}

// Clone returns a copy that shares no pointers with p.
func (p Person) Clone() Person {
	c := Person{Name: p.Name}
	if p.BirthYear != nil {
		v := *p.BirthYear
		c.BirthYear = &v
	}
	if p.DeathYear != nil {
		v := *p.DeathYear
		c.DeathYear = &v
	}
	return c
}

// Year is a convenience for building optional years.
func Year(y int) *int {
	return &y
}

func clonePersons(ps []Person) []Person {
	if ps == nil {
		return nil
	}
	out := make([]Person, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

func yearOrUnknown(y *int) string {
	if y == nil {
		return "?"
	}
	return strconv.Itoa(*y)
}
