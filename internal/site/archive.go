package site

import (
	"sort"

	"github.com/inkfell/inkfell/internal/content"
	"github.com/inkfell/inkfell/internal/model"
)

// Category is one archive group: a category tag and every page carrying it.
type Category struct {
	Name  string
	Pages model.PageList
}

// Slug returns the URL-safe form of the category name.
func (c *Category) Slug() string {
	return content.Slugify(c.Name)
}

// URL returns the category's archive page path.
func (c *Category) URL() string {
	return "/categories/" + c.Slug() + "/"
}

// GroupByCategory partitions pages by category tag. A page appears once in
// the group of every distinct tag it carries; pages without categories
// appear in no group. Groups are ordered alphabetically by name, and pages
// within a group date-descending. The grouping is always recomputed from
// the page set passed in, never cached.
func GroupByCategory(pages model.PageList) []*Category {
	groups := make(map[string]*Category)
	for _, p := range pages {
		seen := make(map[string]bool, len(p.Categories))
		for _, name := range p.Categories {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			g := groups[name]
			if g == nil {
				g = &Category{Name: name}
				groups[name] = g
			}
			g.Pages = append(g.Pages, p)
		}
	}

	out := make([]*Category, 0, len(groups))
	for _, g := range groups {
		sort.Sort(g.Pages)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
