package site

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// WriteFeed writes an RSS 2.0 feed for the given posts. Posts are expected
// already sorted date-descending (the Site post stream order).
func (s *Site) WriteFeed(dest string) error {
	items := make([]rssItem, 0, len(s.Posts))
	for _, p := range s.Posts {
		pubDate := ""
		if !p.Date.IsZero() {
			pubDate = p.Date.Format(time.RFC1123Z)
		}
		link := AbsoluteURL(s.Config.BaseURL, p.Permalink)
		desc := p.Description
		if desc == "" {
			desc = p.Excerpt
		}
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: desc,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.Config.Title,
			Link:        AbsoluteURL(s.Config.BaseURL, "/"),
			Description: s.Config.Description,
			Items:       items,
		},
	}
	return writeXML(dest, feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemaps.org urlset covering the home page and every
// generated document page.
func (s *Site) WriteSitemap(dest string) error {
	urls := []sitemapURL{{Loc: AbsoluteURL(s.Config.BaseURL, "/")}}
	for _, p := range s.Pages {
		u := sitemapURL{Loc: AbsoluteURL(s.Config.BaseURL, p.Permalink)}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	return writeXML(dest, sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func writeXML(dest string, v interface{}) error {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", dest, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %q: %w", dest, err)
	}
	return f.Close()
}

// AbsoluteURL joins the site base URL with a path. With no base URL
// configured the path is returned as-is.
func AbsoluteURL(base, p string) string {
	if base == "" {
		return p
	}
	u, err := url.Parse(base)
	if err != nil {
		return p
	}
	trailing := strings.HasSuffix(p, "/")
	u.Path = path.Join(u.Path, p)
	if trailing && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
