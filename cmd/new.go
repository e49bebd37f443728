package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	newTitle      string
	newLayout     string
	newCategories []string
	newTags       []string
	newDraft      bool
)

// scaffoldFrontMatter is marshalled into the new document's header. Field
// order here is the order written to the file.
type scaffoldFrontMatter struct {
	Layout     string   `yaml:"layout,omitempty"`
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Categories []string `yaml:"categories,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Draft      bool     `yaml:"draft,omitempty"`
}

var newCmd = &cobra.Command{
	Use:   "new [path]",
	Short: "Scaffolds a new content document with YAML front matter",
	Long: `The new command creates a Markdown file under './content/' with a
pre-filled front matter header. The path is relative to the content
directory, e.g. 'inkfell new posts/my-first-post.md'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel := filepath.Clean(args[0])
		if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
			return fmt.Errorf("path %q must stay inside the content directory", args[0])
		}
		dest := filepath.Join(contentDir, rel)
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s already exists", dest)
		}

		title := newTitle
		if title == "" {
			base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
			title = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
		}

		fm := scaffoldFrontMatter{
			Layout:     newLayout,
			Title:      title,
			Date:       time.Now().Format("2006-01-02"),
			Categories: newCategories,
			Tags:       newTags,
			Draft:      newDraft,
		}
		header, err := yaml.Marshal(fm)
		if err != nil {
			return fmt.Errorf("failed to marshal front matter: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
			return fmt.Errorf("failed to create directory for %q: %w", dest, err)
		}
		doc := fmt.Sprintf("---\n%s---\n\n", header)
		if err := os.WriteFile(dest, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", dest, err)
		}
		fmt.Println("Created", dest)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newTitle, "title", "", "document title (default derives from the filename)")
	newCmd.Flags().StringVar(&newLayout, "layout", "", "layout template to use")
	newCmd.Flags().StringSliceVar(&newCategories, "categories", nil, "category tags")
	newCmd.Flags().StringSliceVar(&newTags, "tags", nil, "free-form tags")
	newCmd.Flags().BoolVar(&newDraft, "draft", false, "mark the document as a draft")
	rootCmd.AddCommand(newCmd)
}
