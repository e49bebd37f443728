package config

import (
	"path/filepath"
	"strings"
)

// Config holds the site-wide configuration loaded from config.yaml.
type Config struct {
	Title       string        `mapstructure:"title"`
	Author      string        `mapstructure:"author"`
	Description string        `mapstructure:"description"`
	BaseURL     string        `mapstructure:"baseURL"`
	Theme       string        `mapstructure:"theme"`
	OutputDir   string        `mapstructure:"outputDir"`
	Paginate    int           `mapstructure:"paginate"`
	Permalink   string        `mapstructure:"permalink"`
	Plugins     []string      `mapstructure:"plugins"`
	Defaults    []DefaultRule `mapstructure:"defaults"`
}

// Scope restricts a DefaultRule to documents under a path prefix and/or of
// a given type. Empty fields match everything.
type Scope struct {
	Path string `mapstructure:"path" yaml:"path"`
	Type string `mapstructure:"type" yaml:"type"`
}

// DefaultRule supplies metadata values to every document its scope matches,
// unless the document already sets them.
type DefaultRule struct {
	Scope  Scope                  `mapstructure:"scope" yaml:"scope"`
	Values map[string]interface{} `mapstructure:"values" yaml:"values"`
}

// Matches reports whether the rule applies to a document identified by its
// path relative to the content directory and its resolved type.
func (r DefaultRule) Matches(relPath, docType string) bool {
	if scope := strings.Trim(r.Scope.Path, "/"); scope != "" {
		p := strings.Trim(filepath.ToSlash(relPath), "/")
		if p != scope && !strings.HasPrefix(p, scope+"/") {
			return false
		}
	}
	if r.Scope.Type != "" && r.Scope.Type != docType {
		return false
	}
	return true
}

// ApplyDefaults produces the effective metadata for a document: every key the
// document sets itself, plus each matching rule's values for keys not already
// present. Rules apply in declaration order, so an earlier rule's value is
// never overwritten by a later one. The document's own map is not modified.
func ApplyDefaults(rules []DefaultRule, relPath, docType string, own map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(own))
	for k, v := range own {
		merged[k] = v
	}
	for _, r := range rules {
		if !r.Matches(relPath, docType) {
			continue
		}
		for k, v := range r.Values {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged
}

// PluginEnabled reports whether the named built-in generator should run.
// An empty plugin list enables all built-ins.
func (c Config) PluginEnabled(name string) bool {
	if len(c.Plugins) == 0 {
		return true
	}
	for _, p := range c.Plugins {
		if p == name {
			return true
		}
	}
	return false
}

// KnownPlugins is the set of built-in generator names the plugins list may
// reference.
var KnownPlugins = []string{"feed", "sitemap", "archive"}

// IsKnownPlugin reports whether name refers to a built-in generator.
func IsKnownPlugin(name string) bool {
	for _, p := range KnownPlugins {
		if p == name {
			return true
		}
	}
	return false
}
