package usecase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wozhendeai/grip/internal/adapter/analyzer"
	"github.com/wozhendeai/grip/internal/adapter/fs"
	"github.com/wozhendeai/grip/internal/domain"
	"github.com/wozhendeai/grip/internal/port"
)

// ErrAPIDirMissing is returned when the API routes directory does not exist.
var ErrAPIDirMissing = errors.New("API directory not found")

// DocsUseCase builds the server-side documentation model: API routes, the
// server-rendered pages that fetch from the query layer, and the query
// function inventory.
type DocsUseCase struct {
	layout       *fs.Layout
	reader       port.FileReader
	extractor    *analyzer.UsageExtractor
	routes       *analyzer.RouteScanner
	parser       port.BoundaryParser
	appDir       string
	apiDir       string
	importPrefix string
}

func NewDocsUseCase(
	layout *fs.Layout,
	reader port.FileReader,
	extractor *analyzer.UsageExtractor,
	routes *analyzer.RouteScanner,
	parser port.BoundaryParser,
	appDir, apiDir, importPrefix string,
) *DocsUseCase {
	return &DocsUseCase{
		layout:       layout,
		reader:       reader,
		extractor:    extractor,
		routes:       routes,
		parser:       parser,
		appDir:       appDir,
		apiDir:       apiDir,
		importPrefix: importPrefix,
	}
}

// Generate documents the tree rooted at root. With includeAll false only API
// routes are documented; with true, SSR pages and the query inventory are
// included as well.
func (u *DocsUseCase) Generate(root string, includeAll bool) (*domain.APIDocs, error) {
	apiPath := filepath.Join(root, filepath.FromSlash(u.apiDir))
	if _, err := os.Stat(apiPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAPIDirMissing, apiPath)
	}

	routeFiles, err := u.layout.RouteFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate route files: %w", err)
	}

	docs := &domain.APIDocs{}
	for _, file := range routeFiles {
		content, err := u.reader.ReadFile(file)
		if err != nil {
			continue
		}
		docs.Routes = append(docs.Routes, u.routes.Scan(fs.AppRelative(root, file), u.appDir, content))
	}

	if !includeAll {
		return docs, nil
	}

	pages, err := u.scanPages(root)
	if err != nil {
		return nil, err
	}
	docs.Pages = pages

	queries, err := u.scanQueries(root)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	docs.Queries = queries

	return docs, nil
}

// scanPages finds server-rendered pages and layouts that reference the query
// layer, with the queries each one calls.
func (u *DocsUseCase) scanPages(root string) ([]domain.PageDoc, error) {
	files, err := u.layout.PageFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate page files: %w", err)
	}

	appRoot := filepath.Join(root, filepath.FromSlash(u.appDir))
	var pages []domain.PageDoc
	for _, file := range files {
		content, err := u.reader.ReadFile(file)
		if err != nil {
			continue
		}
		if analyzer.IsClientComponent(content) {
			continue
		}
		if !strings.Contains(content, u.importPrefix) {
			continue
		}

		relToApp, err := filepath.Rel(appRoot, file)
		if err != nil {
			relToApp = filepath.Base(file)
		}
		pages = append(pages, domain.PageDoc{
			Route:       analyzer.PageRoute(filepath.ToSlash(relToApp)),
			File:        fs.AppRelative(root, file),
			QueriesUsed: analyzer.QualifiedUsage(u.extractor.Extract(content)),
		})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}

// scanQueries inventories every exported query function with an inferred
// CRUD operation and its JSDoc description.
func (u *DocsUseCase) scanQueries(root string) ([]domain.QueryDoc, error) {
	files, err := u.layout.DefinitionFiles(root)
	if err != nil {
		return nil, err
	}

	var queries []domain.QueryDoc
	for _, file := range files {
		content, err := u.reader.ReadFile(file)
		if err != nil {
			continue
		}
		module := fs.ModuleName(file)
		defs, err := u.parser.Parse(module, content)
		if err != nil {
			continue
		}
		for _, d := range defs {
			queries = append(queries, domain.QueryDoc{
				Name:        d.Name,
				Module:      module,
				File:        fs.AppRelative(root, file),
				Operation:   analyzer.InferOperation(d.Name),
				Description: analyzer.BlockDescription(analyzer.LeadingJSDoc(d.RawText)),
			})
		}
	}
	return queries, nil
}
