package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRuleMatches(t *testing.T) {
	tests := []struct {
		name    string
		scope   Scope
		relPath string
		docType string
		want    bool
	}{
		{"empty scope matches everything", Scope{}, "posts/hello.md", "posts", true},
		{"path prefix match", Scope{Path: "posts"}, "posts/hello.md", "posts", true},
		{"path prefix with trailing slash", Scope{Path: "posts/"}, "posts/hello.md", "posts", true},
		{"nested path prefix", Scope{Path: "posts/2019"}, "posts/2019/hello.md", "posts", true},
		{"path prefix is segment-aware", Scope{Path: "post"}, "posts/hello.md", "posts", false},
		{"path mismatch", Scope{Path: "projects"}, "posts/hello.md", "posts", false},
		{"type match", Scope{Type: "posts"}, "posts/hello.md", "posts", true},
		{"type mismatch", Scope{Type: "page"}, "posts/hello.md", "posts", false},
		{"path and type must both match", Scope{Path: "posts", Type: "page"}, "posts/hello.md", "posts", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRule{Scope: tt.scope}
			assert.Equal(t, tt.want, r.Matches(tt.relPath, tt.docType))
		})
	}
}

func TestApplyDefaultsDocumentWins(t *testing.T) {
	rules := []DefaultRule{
		{Values: map[string]interface{}{"layout": "single", "author": "site-author"}},
	}
	own := map[string]interface{}{"layout": "custom"}

	merged := ApplyDefaults(rules, "posts/hello.md", "posts", own)

	assert.Equal(t, "custom", merged["layout"], "document-local metadata must beat defaults")
	assert.Equal(t, "site-author", merged["author"], "missing keys come from defaults")
}

func TestApplyDefaultsDeclarationOrder(t *testing.T) {
	// Earlier rules set keys first; later matching rules must not
	// overwrite them.
	rules := []DefaultRule{
		{Values: map[string]interface{}{"layout": "first"}},
		{Values: map[string]interface{}{"layout": "second", "extra": true}},
	}

	merged := ApplyDefaults(rules, "posts/hello.md", "posts", nil)

	assert.Equal(t, "first", merged["layout"])
	assert.Equal(t, true, merged["extra"])
}

func TestApplyDefaultsDocumentWinsRegardlessOfRuleOrder(t *testing.T) {
	own := map[string]interface{}{"layout": "mine"}
	forward := []DefaultRule{
		{Values: map[string]interface{}{"layout": "a"}},
		{Values: map[string]interface{}{"layout": "b"}},
	}
	reversed := []DefaultRule{forward[1], forward[0]}

	assert.Equal(t, "mine", ApplyDefaults(forward, "x.md", "page", own)["layout"])
	assert.Equal(t, "mine", ApplyDefaults(reversed, "x.md", "page", own)["layout"])
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	rules := []DefaultRule{
		{Scope: Scope{Path: "posts"}, Values: map[string]interface{}{"layout": "post", "comments": true}},
	}
	own := map[string]interface{}{"title": "Hello"}

	once := ApplyDefaults(rules, "posts/hello.md", "posts", own)
	twice := ApplyDefaults(rules, "posts/hello.md", "posts", once)

	assert.Equal(t, once, twice, "merging the same rules twice must equal merging once")
}

func TestApplyDefaultsUnmatchedDocument(t *testing.T) {
	rules := []DefaultRule{
		{Scope: Scope{Path: "projects"}, Values: map[string]interface{}{"layout": "project"}},
	}
	own := map[string]interface{}{"title": "Hello"}

	merged := ApplyDefaults(rules, "posts/hello.md", "posts", own)

	require.Len(t, merged, 1)
	assert.Equal(t, "Hello", merged["title"])
}

func TestApplyDefaultsDoesNotMutateInput(t *testing.T) {
	rules := []DefaultRule{
		{Values: map[string]interface{}{"author": "x"}},
	}
	own := map[string]interface{}{"title": "Hello"}

	ApplyDefaults(rules, "a.md", "page", own)

	assert.Equal(t, map[string]interface{}{"title": "Hello"}, own)
}

func TestPluginEnabled(t *testing.T) {
	empty := Config{}
	assert.True(t, empty.PluginEnabled("feed"), "empty plugin list enables all built-ins")

	cfg := Config{Plugins: []string{"feed", "sitemap"}}
	assert.True(t, cfg.PluginEnabled("feed"))
	assert.False(t, cfg.PluginEnabled("archive"))
}

func TestIsKnownPlugin(t *testing.T) {
	assert.True(t, IsKnownPlugin("archive"))
	assert.False(t, IsKnownPlugin("jekyll-seo-tag"))
}
