package template

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultName selects the built-in seed.
const DefaultName = "default"

// Entry is one template file found in the catalog directory.
type Entry struct {
	Index  int
	Path   string
	Schema *TemplateSchema
}

// Catalog resolves template names against the JSON files in a directory.
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// List returns every parseable template, numbered from 1 in file order.
// A missing directory yields an empty list.
func (c *Catalog) List() ([]Entry, error) {
	if c.dir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		schema, err := LoadSchema(file)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(file), err)
		}
		entries = append(entries, Entry{Index: len(entries) + 1, Path: file, Schema: schema})
	}
	return entries, nil
}

// Resolve finds a template by file stem, file name, schema id, display name
// (all case-insensitive) or list number.
func (c *Catalog) Resolve(name string) (*Entry, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, fmt.Errorf("template '%s' not found: empty template name", name)
	}
	entries, err := c.List()
	if err != nil {
		return nil, fmt.Errorf("template '%s' not found: listing templates: %w", name, err)
	}
	for i := range entries {
		entry := &entries[i]
		filename := filepath.Base(entry.Path)
		fileStem := strings.TrimSuffix(filename, filepath.Ext(filename))
		if strings.EqualFold(fileStem, input) ||
			strings.EqualFold(filename, input) ||
			strings.EqualFold(entry.Schema.ID, input) ||
			strings.EqualFold(entry.Schema.Name, input) {
			return entry, nil
		}
	}
	if n, err := strconv.Atoi(input); err == nil {
		for i := range entries {
			if entries[i].Index == n {
				return &entries[i], nil
			}
		}
	}
	return nil, fmt.Errorf("template '%s' not found in %s", name, c.dir)
}
