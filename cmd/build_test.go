package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfell/inkfell/internal/config"
	"github.com/inkfell/inkfell/internal/model"
)

func writeProjectFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func setupBuildProject(t *testing.T) (string, config.Config) {
	t.Helper()
	root := t.TempDir()
	writeProjectFile(t, root, "content/posts/2020-01-01-live.md",
		"---\ntitle: Live\n---\nlive body\n")
	writeProjectFile(t, root, "content/posts/2020-01-02-wip.md",
		"---\ntitle: WIP\ndraft: true\ncategories: [go]\n---\nwip body\n")
	writeProjectFile(t, root, "layouts/base.html", "base")
	writeProjectFile(t, root, "layouts/single.html", "{{ .Page.Title }}")
	writeProjectFile(t, root, "layouts/home.html", "home")
	writeProjectFile(t, root, "layouts/archive.html",
		"{{ range .Site.Categories }}[{{ .Name }}]{{ end }}")
	return root, config.Config{Title: "T", OutputDir: "public", Paginate: 10}
}

func readBuildOutput(t *testing.T, root, rel string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(root, "public", filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(raw)
}

func TestBuildExcludesDrafts(t *testing.T) {
	root, cfg := setupBuildProject(t)

	require.NoError(t, runBuild(cfg, root))

	assert.FileExists(t, filepath.Join(root, "public", "2020", "01", "01", "live.html"))
	assert.NoFileExists(t, filepath.Join(root, "public", "go", "2020", "01", "02", "wip.html"),
		"draft pages must not be generated")

	feed := readBuildOutput(t, root, "feed.xml")
	assert.Contains(t, feed, "Live")
	assert.NotContains(t, feed, "WIP", "drafts must not leak into the feed")

	archive := readBuildOutput(t, root, "archive/index.html")
	assert.NotContains(t, archive, "[go]", "a draft's categories must not create archive groups")
}

func TestBuildIncludesDraftsWithFlag(t *testing.T) {
	root, cfg := setupBuildProject(t)

	includeDrafts = true
	t.Cleanup(func() { includeDrafts = false })

	require.NoError(t, runBuild(cfg, root))

	assert.FileExists(t, filepath.Join(root, "public", "go", "2020", "01", "02", "wip.html"))
	assert.Contains(t, readBuildOutput(t, root, "feed.xml"), "WIP")
	assert.Contains(t, readBuildOutput(t, root, "archive/index.html"), "[go]")
}

func TestDropDrafts(t *testing.T) {
	pages := model.PageList{
		{Title: "Keep"},
		{Title: "Draft", Draft: true},
		{Title: "Also Keep"},
	}

	kept := dropDrafts(pages)

	require.Len(t, kept, 2)
	assert.Equal(t, "Keep", kept[0].Title)
	assert.Equal(t, "Also Keep", kept[1].Title)
}
