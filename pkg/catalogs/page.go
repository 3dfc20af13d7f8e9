package catalogs

// Page is one page of results from the remote catalog.
type Page struct {
	Works    []Work `json:"works" yaml:"works"`
	Count    int    `json:"count" yaml:"count"`                           // Remote total across all pages
	Next     string `json:"next,omitempty" yaml:"next,omitempty"`         // Continuation, empty on the last page
	Previous string `json:"previous,omitempty" yaml:"previous,omitempty"` // Empty on the first page
}

// IsLast reports whether no further page follows.
func (p *Page) IsLast() bool {
	return p == nil || p.Next == ""
}

// Empty reports whether the page carries no works.
func (p *Page) Empty() bool {
	return p == nil || len(p.Works) == 0
}
