package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkfell/inkfell/internal/config"
	"github.com/inkfell/inkfell/internal/content"
	"github.com/inkfell/inkfell/internal/model"
	"github.com/inkfell/inkfell/internal/site"
)

// Conventional template names.
const (
	BaseLayout     = "base.html"
	HomeLayout     = "home.html"
	SingleLayout   = "single.html"
	PostLayout     = "post.html"
	ListLayout     = "list.html"
	ArchiveLayout  = "archive.html"
	CategoryLayout = "category.html"
)

// Renderer executes layout templates against site data and writes the
// resulting pages under the output directory.
type Renderer struct {
	cfg    config.Config
	tpl    *template.Template
	outDir string
}

// New loads layout templates and returns a Renderer. Theme layouts (under
// themes/<name>/layouts) load first; project layouts load second so a
// same-named project template overrides the theme's. base.html must exist
// in one of them.
func New(cfg config.Config, root string) (*Renderer, error) {
	tpl := template.New("inkfell")

	var dirs []string
	if cfg.Theme != "" {
		dirs = append(dirs, filepath.Join(root, "themes", cfg.Theme, "layouts"))
	}
	dirs = append(dirs, filepath.Join(root, "layouts"))

	loaded := 0
	for _, dir := range dirs {
		n, err := loadLayouts(tpl, dir)
		if err != nil {
			return nil, err
		}
		loaded += n
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no .html layout files found in %s", strings.Join(dirs, " or "))
	}
	if tpl.Lookup(BaseLayout) == nil {
		return nil, fmt.Errorf("%s not found in any layouts directory", BaseLayout)
	}

	return &Renderer{
		cfg:    cfg,
		tpl:    tpl,
		outDir: filepath.Join(root, cfg.OutputDir),
	}, nil
}

// loadLayouts parses every .html file under dir into tpl, named by its path
// relative to dir (so partials/nav.html stays addressable). A missing dir
// is not an error; themes and projects may each carry only part of the set.
func loadLayouts(tpl *template.Template, dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read layout %q: %w", path, err)
		}
		if _, err := tpl.New(filepath.ToSlash(rel)).Parse(string(raw)); err != nil {
			return fmt.Errorf("failed to parse layout %q: %w", path, err)
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Lookup exposes template resolution, mainly for tests.
func (r *Renderer) Lookup(name string) *template.Template {
	return r.tpl.Lookup(name)
}

// pageData is the context passed to single-page layouts.
type pageData struct {
	Site *site.Site
	Page *model.Page
}

// listData is the context passed to list and home layouts.
type listData struct {
	Site      *site.Site
	Paginator *site.Paginator
}

// categoryData is the context passed to per-category archive fragments.
type categoryData struct {
	Site     *site.Site
	Category *site.Category
}

// archiveData is the context passed to the combined archive index. The
// archive iterates .Site.Categories; it has no paginator.
type archiveData struct {
	Site *site.Site
}

// RenderPage writes one document page at the path its permalink dictates.
// Layout resolution: front-matter layout if present and known, otherwise
// post.html for posts, otherwise single.html, with base.html as the final
// fallback.
func (r *Renderer) RenderPage(s *site.Site, p *model.Page) error {
	layout := SingleLayout
	if p.Type == site.PostsType && r.tpl.Lookup(PostLayout) != nil {
		layout = PostLayout
	}
	if p.Layout != "" {
		if r.tpl.Lookup(p.Layout) != nil {
			layout = p.Layout
		} else {
			log.Printf("Warning: front-matter layout %q for %q not found, using %q", p.Layout, p.Title, layout)
		}
	}
	if r.tpl.Lookup(layout) == nil {
		log.Printf("Warning: layout %q for %q not found, falling back to %s", layout, p.Title, BaseLayout)
		layout = BaseLayout
	}
	return r.write(content.OutputPath(p.Permalink), layout, pageData{Site: s, Page: p})
}

// RenderHome writes the site's front page from home.html. The home layout
// receives the first paginator slice of the post stream.
func (r *Renderer) RenderHome(s *site.Site, pag *site.Paginator) error {
	if r.tpl.Lookup(HomeLayout) == nil {
		return fmt.Errorf("home layout %q not found; create it in the layouts directory", HomeLayout)
	}
	return r.write("index.html", HomeLayout, listData{Site: s, Paginator: pag})
}

// RenderList writes the paginated post listing under /posts/. Skipped with a
// warning when list.html is absent.
func (r *Renderer) RenderList(s *site.Site, paginators []*site.Paginator) error {
	if r.tpl.Lookup(ListLayout) == nil {
		log.Printf("Warning: list layout %q not found, skipping post listing", ListLayout)
		return nil
	}
	for _, pag := range paginators {
		dest := filepath.Join("posts", "index.html")
		if pag.PageNumber > 1 {
			dest = filepath.Join("posts", "page", fmt.Sprintf("%d", pag.PageNumber), "index.html")
		}
		if err := r.write(dest, ListLayout, listData{Site: s, Paginator: pag}); err != nil {
			return err
		}
	}
	return nil
}

// RenderArchive writes the combined archive index plus one fragment per
// category group.
func (r *Renderer) RenderArchive(s *site.Site) error {
	if r.tpl.Lookup(ArchiveLayout) != nil {
		dest := filepath.Join("archive", "index.html")
		if err := r.write(dest, ArchiveLayout, archiveData{Site: s}); err != nil {
			return err
		}
	} else {
		log.Printf("Warning: archive layout %q not found, skipping archive index", ArchiveLayout)
	}

	catLayout := CategoryLayout
	if r.tpl.Lookup(catLayout) == nil {
		log.Printf("Warning: category layout %q not found, skipping category pages", catLayout)
		return nil
	}
	for _, c := range s.Categories {
		dest := filepath.Join("categories", c.Slug(), "index.html")
		if err := r.write(dest, catLayout, categoryData{Site: s, Category: c}); err != nil {
			return err
		}
	}
	return nil
}

// write executes the named template and writes the result to rel under the
// output directory.
func (r *Renderer) write(rel, layout string, data interface{}) error {
	buf := &bytes.Buffer{}
	if err := r.tpl.ExecuteTemplate(buf, layout, data); err != nil {
		return fmt.Errorf("failed to execute template %q for %q: %w", layout, rel, err)
	}

	dest := filepath.Join(r.outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", dest, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", dest, err)
	}
	return nil
}
