package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inkfell/inkfell/internal/config"
	"github.com/inkfell/inkfell/internal/model"
)

// DefaultType is assigned to documents living directly in the content root.
const DefaultType = "page"

// Date formats accepted in front matter, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Loader reads Markdown documents from a content directory, extracts front
// matter, applies configuration defaults, and converts bodies to HTML.
type Loader struct {
	Dir string

	cfg    config.Config
	md     goldmark.Markdown
	titler cases.Caser
}

// NewLoader returns a Loader for the given content directory.
func NewLoader(dir string, cfg config.Config) *Loader {
	return &Loader{
		Dir: dir,
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		titler: cases.Title(language.English),
	}
}

// Load walks the content directory and returns a page for every Markdown
// file found. Files that fail to read or convert abort the load.
func (l *Loader) Load() (model.PageList, error) {
	var pages model.PageList
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path %q: %w", path, err)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		page, loadErr := l.LoadFile(path)
		if loadErr != nil {
			return loadErr
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// LoadFile reads a single Markdown document and builds its Page.
//
// The document's type is resolved from its directory (or its own front
// matter) before the defaults merge, because rules match on it. A rule that
// supplies a "type" value therefore lands in Metadata like any other
// defaulted key but does not re-type the document or influence the matching
// of other rules.
func (l *Loader) LoadFile(path string) (*model.Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var meta map[string]interface{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		log.Printf("Warning: could not parse front matter for %s: %v. Treating as pure markdown.", path, err)
		body = raw
	}
	if meta == nil {
		meta = make(map[string]interface{})
	}

	relPath, err := filepath.Rel(l.Dir, path)
	if err != nil {
		relPath = path
	}

	docType := typeFromPath(relPath)
	if t, ok := meta["type"].(string); ok && t != "" {
		docType = t
	}

	merged := config.ApplyDefaults(l.cfg.Defaults, relPath, docType, meta)

	var htmlBuf bytes.Buffer
	if err := l.md.Convert(body, &htmlBuf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown for %q: %w", path, err)
	}

	page := &model.Page{
		Type:        docType,
		SourcePath:  path,
		RelPath:     filepath.ToSlash(relPath),
		ContentHTML: template.HTML(htmlBuf.String()),
		Metadata:    merged,
	}

	page.Title = stringValue(merged, "title")
	if page.Title == "" {
		page.Title = l.titleFromFilename(filepath.Base(path))
	}
	page.Layout = stringValue(merged, "layout")
	page.Description = stringValue(merged, "description")
	page.Categories = stringList(merged, "categories")
	page.Tags = stringList(merged, "tags")
	page.Draft = boolValue(merged, "draft")
	page.Slug = stringValue(merged, "slug")
	if page.Slug == "" {
		page.Slug = slugFromFilename(filepath.Base(path))
	}

	// YAML decoders hand back unquoted dates as time.Time and quoted ones
	// as string; accept both.
	switch d := merged["date"].(type) {
	case time.Time:
		page.Date = d
	case string:
		t, ok := parseDate(d)
		if !ok {
			log.Printf("Warning: could not parse date %q for %s. Use YYYY-MM-DD or RFC3339 format.", d, path)
		}
		page.Date = t
	}
	if page.Date.IsZero() {
		if d, ok := dateFromFilename(filepath.Base(path)); ok {
			page.Date = d
		}
	}

	page.Excerpt = stringValue(merged, "excerpt")
	if page.Excerpt == "" {
		page.Excerpt = Excerpt(htmlBuf.String())
	}

	page.Permalink = ExpandPermalink(l.cfg.Permalink, page)
	return page, nil
}

// typeFromPath derives the document type from the first directory component
// of the content-relative path, e.g. content/posts/x.md -> "posts".
func typeFromPath(relPath string) string {
	dir := filepath.Dir(relPath)
	if dir == "." || dir == "" {
		return DefaultType
	}
	parts := strings.Split(filepath.ToSlash(dir), "/")
	if parts[0] == "" {
		return DefaultType
	}
	return parts[0]
}

// titleFromFilename turns "my-first-post.md" into "My First Post".
func (l *Loader) titleFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = trimDatePrefix(base)
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return l.titler.String(base)
}

func slugFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return Slugify(trimDatePrefix(base))
}

// trimDatePrefix strips a leading YYYY-MM-DD- from Jekyll-style post names.
func trimDatePrefix(base string) string {
	if len(base) > 11 && isDatePrefix(base[:10]) && base[10] == '-' {
		return base[11:]
	}
	return base
}

func dateFromFilename(name string) (time.Time, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if len(base) >= 10 && isDatePrefix(base[:10]) {
		if t, err := time.Parse("2006-01-02", base[:10]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDatePrefix(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringValue(meta map[string]interface{}, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func boolValue(meta map[string]interface{}, key string) bool {
	if v, ok := meta[key].(bool); ok {
		return v
	}
	return false
}

// stringList reads a front-matter value that may be a YAML list or a single
// whitespace-separated string (the compact Jekyll form "categories: a b").
func stringList(meta map[string]interface{}, key string) []string {
	var out []string
	switch v := meta[key].(type) {
	case string:
		out = strings.Fields(v)
	case []string:
		out = append(out, v...)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}
