package model

import (
	"html/template"
	"time"
)

// Page represents a single piece of content (e.g., blog post, standalone page).
type Page struct {
	Title       string
	Date        time.Time
	Type        string
	Layout      string
	Categories  []string
	Tags        []string
	Description string
	Excerpt     string
	Slug        string
	Draft       bool
	SourcePath  string
	RelPath     string
	Permalink   string
	ContentHTML template.HTML
	Metadata    map[string]interface{}
}

// URL returns the page's published URL path. Alias for Permalink so
// templates can use the conventional {{ .URL }} form.
func (p *Page) URL() string {
	return p.Permalink
}

// HasCategory reports whether the page carries the given category tag.
func (p *Page) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// PageList is a collection of pages. Its sort order is publication date
// descending, with undated pages last; ties break on title ascending.
type PageList []*Page

func (p PageList) Len() int { return len(p) }

func (p PageList) Less(i, j int) bool {
	di, dj := p[i].Date, p[j].Date
	switch {
	case di.IsZero() && dj.IsZero():
		return p[i].Title < p[j].Title
	case di.IsZero():
		return false
	case dj.IsZero():
		return true
	case di.Equal(dj):
		return p[i].Title < p[j].Title
	}
	return di.After(dj)
}

func (p PageList) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
