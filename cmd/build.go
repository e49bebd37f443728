package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inkfell/inkfell/internal/config"
	"github.com/inkfell/inkfell/internal/content"
	"github.com/inkfell/inkfell/internal/model"
	"github.com/inkfell/inkfell/internal/render"
	"github.com/inkfell/inkfell/internal/site"
)

// Conventional project directories.
const (
	contentDir = "content"
	layoutsDir = "layouts"
	staticDir  = "static"
	dataDir    = "data"
	themesDir  = "themes"
)

var includeDrafts bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command processes Markdown files from './content/', merges
site-wide metadata defaults from config.yaml into each document, applies
templates from './layouts/' (and the configured theme), copies static assets,
and generates the site in the configured output directory (default
'./public/'): one page per document, a paginated post listing, per-category
archive pages, an RSS feed and a sitemap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(siteConfig, ".")
	},
}

func runBuild(cfg config.Config, root string) error {
	log.Printf("Building site %q into %q", cfg.Title, cfg.OutputDir)

	srcDir := filepath.Join(root, contentDir)
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		return fmt.Errorf("content directory %q not found; create it and add your Markdown files", srcDir)
	}

	outDir := filepath.Join(root, cfg.OutputDir)
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to remove output directory %q: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", outDir, err)
	}

	pages, err := content.NewLoader(srcDir, cfg).Load()
	if err != nil {
		return fmt.Errorf("error loading content: %w", err)
	}
	if !includeDrafts {
		pages = dropDrafts(pages)
	}
	log.Printf("Loaded %d content document(s)", len(pages))

	data, err := site.LoadData(filepath.Join(root, dataDir))
	if err != nil {
		return fmt.Errorf("error loading data files: %w", err)
	}

	s := site.New(cfg, pages, data)

	r, err := render.New(cfg, root)
	if err != nil {
		return err
	}

	var staticDirs []string
	if cfg.Theme != "" {
		staticDirs = append(staticDirs, filepath.Join(root, themesDir, cfg.Theme, staticDir))
	}
	staticDirs = append(staticDirs, filepath.Join(root, staticDir))
	if err := r.CopyStatic(staticDirs...); err != nil {
		return err
	}

	for _, p := range s.Pages {
		if err := r.RenderPage(s, p); err != nil {
			return err
		}
	}

	paginators := site.Paginate(s.Posts, cfg.Paginate, "/posts")
	if err := r.RenderHome(s, paginators[0]); err != nil {
		return err
	}
	if err := r.RenderList(s, paginators); err != nil {
		return err
	}

	if cfg.PluginEnabled("archive") {
		if err := r.RenderArchive(s); err != nil {
			return err
		}
	}
	if cfg.PluginEnabled("feed") {
		if err := s.WriteFeed(filepath.Join(outDir, "feed.xml")); err != nil {
			return err
		}
	}
	if cfg.PluginEnabled("sitemap") {
		if err := s.WriteSitemap(filepath.Join(outDir, "sitemap.xml")); err != nil {
			return err
		}
	}

	log.Printf("Build complete: %d page(s), %d post(s), %d categories",
		len(s.Pages), len(s.Posts), len(s.Categories))
	return nil
}

func dropDrafts(pages model.PageList) model.PageList {
	kept := pages[:0]
	for _, p := range pages {
		if p.Draft {
			log.Printf("Skipping draft: %s", p.SourcePath)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func init() {
	buildCmd.Flags().BoolVar(&includeDrafts, "drafts", false, "include documents marked draft: true")
	rootCmd.AddCommand(buildCmd)
}
