package site

import (
	"fmt"
	"path"

	"github.com/inkfell/inkfell/internal/model"
)

// Paginator is one slice of a paginated collection plus the navigation links
// templates need to move between slices.
type Paginator struct {
	Pages      model.PageList
	PageNumber int
	TotalPages int
	PerPage    int
	TotalItems int

	PreviousPageURL string
	NextPageURL     string
}

// HasPrevious reports whether an earlier page exists.
func (p *Paginator) HasPrevious() bool { return p.PreviousPageURL != "" }

// HasNext reports whether a later page exists.
func (p *Paginator) HasNext() bool { return p.NextPageURL != "" }

// Paginate slices pages into chunks of perPage. Page 1 lives at basePath,
// page N at basePath/page/N/. A perPage of zero or less disables pagination
// and yields a single page holding everything. An empty collection still
// yields one (empty) page so the listing renders.
func Paginate(pages model.PageList, perPage int, basePath string) []*Paginator {
	if perPage <= 0 {
		perPage = len(pages)
		if perPage == 0 {
			perPage = 1
		}
	}

	total := (len(pages) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}

	out := make([]*Paginator, 0, total)
	for n := 1; n <= total; n++ {
		lo := (n - 1) * perPage
		hi := lo + perPage
		if hi > len(pages) {
			hi = len(pages)
		}
		p := &Paginator{
			Pages:      pages[lo:hi],
			PageNumber: n,
			TotalPages: total,
			PerPage:    perPage,
			TotalItems: len(pages),
		}
		if n > 1 {
			p.PreviousPageURL = PageURL(basePath, n-1)
		}
		if n < total {
			p.NextPageURL = PageURL(basePath, n+1)
		}
		out = append(out, p)
	}
	return out
}

// PageURL returns the URL of page n in a paginated listing rooted at base.
func PageURL(base string, n int) string {
	base = path.Clean("/" + base)
	if n <= 1 {
		if base != "/" {
			base += "/"
		}
		return base
	}
	return path.Join(base, "page", fmt.Sprintf("%d", n)) + "/"
}
