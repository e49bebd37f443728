package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfell/inkfell/internal/config"
)

func writeFile(t *testing.T, dir, rel, body string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/2019-05-02-bayes.md", `---
title: "Bayesian Nets in Anger"
date: 2019-05-02
categories: [machine-learning]
tags: [bayes, statistics]
layout: post.html
description: A war story.
---

First paragraph of **prose**.

Second paragraph.
`)

	l := NewLoader(dir, config.Config{})
	pages, err := l.Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.Equal(t, "Bayesian Nets in Anger", p.Title)
	assert.Equal(t, "posts", p.Type)
	assert.Equal(t, []string{"machine-learning"}, p.Categories)
	assert.Equal(t, []string{"bayes", "statistics"}, p.Tags)
	assert.Equal(t, "post.html", p.Layout)
	assert.Equal(t, "A war story.", p.Description)
	assert.Equal(t, time.Date(2019, 5, 2, 0, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, "bayes", p.Slug, "slug strips the filename's date prefix")
	assert.Contains(t, string(p.ContentHTML), "<strong>prose</strong>")
}

func TestLoadFileNoFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "about.md", "# About\n\nJust a page.\n")

	l := NewLoader(dir, config.Config{})
	pages, err := l.Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	p := pages[0]
	assert.Equal(t, "About", p.Title, "title derives from the filename")
	assert.Equal(t, DefaultType, p.Type)
	assert.Empty(t, p.Categories)
	assert.Contains(t, string(p.ContentHTML), "<h1")
}

func TestLoadFileTitleFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/my-first_post.md", "---\ndate: 2020-01-01\n---\nhello\n")

	l := NewLoader(dir, config.Config{})
	pages, err := l.Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "My First Post", pages[0].Title)
}

func TestLoadFileDateFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/2021-12-24-eve.md", "---\ntitle: Eve\n---\nhello\n")

	l := NewLoader(dir, config.Config{})
	pages, err := l.Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, time.Date(2021, 12, 24, 0, 0, 0, 0, time.UTC), pages[0].Date)
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/one.md", "---\ntitle: One\n---\nhello\n")
	writeFile(t, dir, "two.md", "---\ntitle: Two\n---\nhello\n")

	cfg := config.Config{
		Defaults: []config.DefaultRule{
			{
				Scope:  config.Scope{Path: "posts"},
				Values: map[string]interface{}{"layout": "post.html", "categories": "functional-programming"},
			},
		},
	}
	pages, err := NewLoader(dir, cfg).Load()
	require.NoError(t, err)
	require.Len(t, pages, 2)

	byTitle := map[string]int{}
	for i, p := range pages {
		byTitle[p.Title] = i
	}
	post := pages[byTitle["One"]]
	page := pages[byTitle["Two"]]

	assert.Equal(t, "post.html", post.Layout)
	assert.Equal(t, []string{"functional-programming"}, post.Categories)
	assert.Empty(t, page.Layout, "rule scoped to posts/ must not touch root documents")
	assert.Empty(t, page.Categories)
}

func TestLoadFileDraftAndTypeOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/wip.md", "---\ntitle: WIP\ndraft: true\ntype: project\n---\nhello\n")

	pages, err := NewLoader(dir, config.Config{}).Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.True(t, pages[0].Draft)
	assert.Equal(t, "project", pages[0].Type, "front-matter type overrides the directory")
}

func TestLoadFileRuleSuppliedTypeDoesNotRetype(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/x.md", "---\ntitle: X\n---\nhello\n")

	cfg := config.Config{
		Defaults: []config.DefaultRule{
			{
				Scope:  config.Scope{Path: "posts"},
				Values: map[string]interface{}{"type": "project"},
			},
		},
	}
	pages, err := NewLoader(dir, cfg).Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)

	// Type is fixed from the directory before the merge; the rule's value
	// is still visible as plain metadata.
	assert.Equal(t, "posts", pages[0].Type)
	assert.Equal(t, "project", pages[0].Metadata["type"])
}

func TestLoadFileCategoriesCompactForm(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/x.md", "---\ntitle: X\ncategories: alpha beta\n---\nhello\n")

	pages, err := NewLoader(dir, config.Config{}).Load()
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, []string{"alpha", "beta"}, pages[0].Categories)
}

func TestLoadFileExcerptDerivation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\n---\nShort *summary* line.\n\nMore text.\n")
	writeFile(t, dir, "b.md", "---\ntitle: B\nexcerpt: Hand-written.\n---\nBody.\n")

	pages, err := NewLoader(dir, config.Config{}).Load()
	require.NoError(t, err)
	require.Len(t, pages, 2)

	for _, p := range pages {
		switch p.Title {
		case "A":
			assert.Equal(t, "Short summary line.", p.Excerpt)
		case "B":
			assert.Equal(t, "Hand-written.", p.Excerpt)
		}
	}
}

func TestLoadSkipsNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "posts/real.md", "---\ntitle: Real\n---\nhello\n")
	writeFile(t, dir, "posts/notes.txt", "not content")

	pages, err := NewLoader(dir, config.Config{}).Load()
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}
