package site

import (
	"sort"
	"time"

	"github.com/inkfell/inkfell/internal/config"
	"github.com/inkfell/inkfell/internal/model"
)

// PostsType is the content type treated as the blog post stream: documents
// under content/posts/.
const PostsType = "posts"

// Site holds everything the templates see: configuration, the full page
// set, the post stream, per-type collections, category groups and data
// files. It is rebuilt from scratch on every build.
type Site struct {
	Config     config.Config
	Pages      model.PageList
	Posts      model.PageList
	ByType     map[string]model.PageList
	Categories []*Category
	Data       map[string]interface{}
	BuildTime  time.Time
}

// New assembles a Site from loaded pages. Pages are sorted date-descending,
// partitioned by type, and grouped by category.
func New(cfg config.Config, pages model.PageList, data map[string]interface{}) *Site {
	sort.Sort(pages)

	s := &Site{
		Config:    cfg,
		Pages:     pages,
		ByType:    make(map[string]model.PageList),
		Data:      data,
		BuildTime: time.Now(),
	}
	for _, p := range pages {
		s.ByType[p.Type] = append(s.ByType[p.Type], p)
		if p.Type == PostsType {
			s.Posts = append(s.Posts, p)
		}
	}
	s.Categories = GroupByCategory(pages)
	return s
}

// Category returns the named category group, or nil if no page carries it.
func (s *Site) Category(name string) *Category {
	for _, c := range s.Categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}
