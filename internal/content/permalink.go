package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/inkfell/inkfell/internal/model"
)

// DefaultPermalink is the permalink template used when config.yaml does not
// set one: category path, date components, then the slugged title.
const DefaultPermalink = "/:categories/:year/:month/:day/:title:output_ext"

// OutputExt is the extension substituted for :output_ext.
const OutputExt = ".html"

// ExpandPermalink fills the permalink template's placeholders from the
// page's effective metadata. Recognized placeholders are :categories, :year,
// :month, :day, :title and :output_ext. Placeholders without a value (an
// undated page's :year, an uncategorized page's :categories) expand to
// nothing and the surrounding slashes collapse.
func ExpandPermalink(tpl string, p *model.Page) string {
	if tpl == "" {
		tpl = DefaultPermalink
	}

	var cats []string
	for _, c := range p.Categories {
		if s := Slugify(c); s != "" {
			cats = append(cats, s)
		}
	}

	year, month, day := "", "", ""
	if !p.Date.IsZero() {
		year = fmt.Sprintf("%04d", p.Date.Year())
		month = fmt.Sprintf("%02d", int(p.Date.Month()))
		day = fmt.Sprintf("%02d", p.Date.Day())
	}

	// Longer placeholder names first so :output_ext is not eaten by a
	// hypothetical :output.
	r := strings.NewReplacer(
		":categories", strings.Join(cats, "/"),
		":output_ext", OutputExt,
		":year", year,
		":month", month,
		":day", day,
		":title", p.Slug,
	)
	out := r.Replace(tpl)

	trailingSlash := strings.HasSuffix(out, "/")
	out = path.Clean("/" + strings.Trim(out, "/"))
	if trailingSlash && out != "/" {
		out += "/"
	}
	return out
}

// OutputPath maps a permalink to the file to write under the output
// directory. Pretty URLs (no extension) become <permalink>/index.html.
func OutputPath(permalink string) string {
	trimmed := strings.Trim(permalink, "/")
	if trimmed == "" {
		return "index.html"
	}
	if path.Ext(trimmed) != "" {
		return trimmed
	}
	return path.Join(trimmed, "index.html")
}
