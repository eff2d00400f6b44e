package compositor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"photo-template-backend/internal/models"
)

var templateExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// TemplateLibrary resolves template names to files inside a fixed,
// read-only assets directory.
type TemplateLibrary struct {
	dir string
}

func NewTemplateLibrary(dir string) *TemplateLibrary {
	return &TemplateLibrary{dir: dir}
}

func (l *TemplateLibrary) Dir() string {
	return l.dir
}

// ValidName reports whether name is a bare file name that cannot escape
// the templates directory.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return filepath.Base(name) == name
}

// Resolve returns the path of the named template. Unknown or unsafe names
// yield models.ErrNotFound.
func (l *TemplateLibrary) Resolve(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: template %q", models.ErrNotFound, name)
	}
	path := filepath.Join(l.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: template %q", models.ErrNotFound, name)
	}
	return path, nil
}

// List returns the sorted names of image files in the templates directory.
func (l *TemplateLibrary) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !templateExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
