package fs

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wozhendeai/grip/config"
	"github.com/wozhendeai/grip/internal/domain"
)

// Layout resolves the project layout convention into concrete file sets:
// consumer files by category, definition files, and the barrel file.
type Layout struct {
	cfg config.LayoutConfig

	excludes []string
}

func NewLayout(cfg config.LayoutConfig, excludes []string) *Layout {
	return &Layout{cfg: cfg, excludes: excludes}
}

// categoryPatterns maps each consumer category to its include globs, relative
// to the project root.
func (l *Layout) categoryPatterns() []struct {
	category domain.FileCategory
	patterns []string
} {
	app := path.Clean(filepath.ToSlash(l.cfg.AppDir))
	api := path.Clean(filepath.ToSlash(l.cfg.APIDir))
	lib := path.Clean(filepath.ToSlash(l.cfg.LibDir))

	return []struct {
		category domain.FileCategory
		patterns []string
	}{
		{domain.CategoryPage, []string{app + "/**/page.tsx", app + "/**/layout.tsx"}},
		{domain.CategoryRoute, []string{api + "/**/route.ts"}},
		{domain.CategoryAction, []string{app + "/**/_actions/*.ts"}},
		{domain.CategoryComponent, []string{app + "/**/_components/*.tsx"}},
		{domain.CategoryLib, []string{lib + "/**/*.ts"}},
	}
}

// ConsumerFiles enumerates every consumer file to analyze, in deterministic
// order. A file matched by more than one category is reported once, under the
// first category that matched it.
func (l *Layout) ConsumerFiles(root string) ([]domain.ConsumerFile, error) {
	var out []domain.ConsumerFile
	seen := make(map[string]bool)

	for _, cp := range l.categoryPatterns() {
		walker := NewWalker(cp.patterns, l.excludes)
		files, err := walker.Walk(root)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, domain.ConsumerFile{Path: f, Category: cp.category})
		}
	}

	return out, nil
}

// RouteFiles enumerates API route files only, for documentation output.
func (l *Layout) RouteFiles(root string) ([]string, error) {
	api := path.Clean(filepath.ToSlash(l.cfg.APIDir))
	return NewWalker([]string{api + "/**/route.ts"}, l.excludes).Walk(root)
}

// PageFiles enumerates page and layout files, for documentation output.
func (l *Layout) PageFiles(root string) ([]string, error) {
	app := path.Clean(filepath.ToSlash(l.cfg.AppDir))
	return NewWalker([]string{app + "/**/page.tsx", app + "/**/layout.tsx"}, l.excludes).Walk(root)
}

// QueriesPath returns the absolute path of the query definitions directory.
func (l *Layout) QueriesPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(l.cfg.QueriesDir))
}

// BarrelPath returns the absolute path of the aggregating index file.
func (l *Layout) BarrelPath(root string) string {
	return filepath.Join(l.QueriesPath(root), l.cfg.BarrelFile)
}

// DefinitionFiles enumerates the definition files of the query layer: every
// .ts file directly inside the queries directory except the barrel itself.
func (l *Layout) DefinitionFiles(root string) ([]string, error) {
	dir := l.QueriesPath(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".ts") {
			continue
		}
		if e.Name() == l.cfg.BarrelFile {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// ModuleName returns the logical module name of a definition file: its stem.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AppRelative rewrites an absolute consumer path as a root-relative slash
// path for reports.
func AppRelative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
