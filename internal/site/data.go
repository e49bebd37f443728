package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// LoadData reads every YAML file under dir into a map keyed by the file's
// base name, exposed to templates as .Site.Data. A missing directory is not
// an error; a file that fails to parse is.
func LoadData(dir string) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return data, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read data file %q: %w", path, err)
		}
		var v interface{}
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("failed to parse data file %q: %w", path, err)
		}
		key := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		data[key] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
