package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// LoadFile loads and validates a catalog file.
// The format is picked by extension.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: reading file %s: %w", path, err)
	}

	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: parsing file %s: %w", path, err)
	}

	if c.ID == "" {
		c.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return c, nil
}

// Parse decodes catalog data for the given extension and validates it.
func Parse(data []byte, ext string) (Catalog, error) {
	var c Catalog

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Catalog{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &c); err != nil {
			return Catalog{}, fmt.Errorf("toml decode: %w", err)
		}
	default:
		return Catalog{}, fmt.Errorf("unsupported extension: %s", ext)
	}

	if err := Validate(c); err != nil {
		return Catalog{}, err
	}
	return c, nil
}
