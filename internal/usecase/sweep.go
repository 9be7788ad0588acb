package usecase

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/wozhendeai/grip/internal/adapter/analyzer"
	"github.com/wozhendeai/grip/internal/adapter/fs"
	"github.com/wozhendeai/grip/internal/domain"
	"github.com/wozhendeai/grip/internal/port"
)

// ErrQueriesDirMissing is returned when the query definitions directory does
// not exist. Nothing is analyzed in that case.
var ErrQueriesDirMissing = errors.New("queries directory not found")

// ProgressFunc reports scan progress to the caller.
type ProgressFunc func(processed, total int, currentFile string)

// SweepUseCase runs the full pipeline: collect usage from every consumer
// file, resolve barrel re-exports, parse definition boundaries, partition by
// reachability, and (in apply mode) rewrite the definition files.
//
// Analysis and mutation are strictly phase-separated: no file is rewritten
// until the used set has been accumulated across all consumers, so a
// function called from a not-yet-scanned file can never be deleted.
type SweepUseCase struct {
	layout    *fs.Layout
	reader    port.FileReader
	extractor port.UsageExtractor
	resolver  port.ReexportResolver
	parser    port.BoundaryParser
	remover   port.Remover
}

func NewSweepUseCase(
	layout *fs.Layout,
	reader port.FileReader,
	extractor port.UsageExtractor,
	resolver port.ReexportResolver,
	parser port.BoundaryParser,
	remover port.Remover,
) *SweepUseCase {
	return &SweepUseCase{
		layout:    layout,
		reader:    reader,
		extractor: extractor,
		resolver:  resolver,
		parser:    parser,
		remover:   remover,
	}
}

// SweepResult carries the structured report plus apply-mode bookkeeping.
type SweepResult struct {
	Report         domain.SweepReport
	FilesRewritten int
}

// Sweep analyzes the tree rooted at root and, when apply is true, rewrites
// definition files whose unreachable functions were found. progress may be
// nil.
func (u *SweepUseCase) Sweep(root string, apply bool, progress ProgressFunc) (*SweepResult, error) {
	if _, err := os.Stat(u.layout.QueriesPath(root)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQueriesDirMissing, u.layout.QueriesPath(root))
	}

	result := &SweepResult{}
	report := &result.Report
	warn := func(format string, args ...any) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(format, args...))
	}

	edges, ambiguous := u.resolveBarrel(root, warn)

	used, err := u.collectUsage(root, report, warn, progress)
	if err != nil {
		return nil, err
	}
	report.UsedSymbols = used.Len()

	defs, contents, err := u.parseDefinitions(root, warn)
	if err != nil {
		return nil, err
	}
	report.TotalFunctions = len(defs)

	_, unreachable := Partition(defs, used, edges, ambiguous)
	report.Unused = groupByModule(root, unreachable)
	report.Applied = apply

	if !apply || len(unreachable) == 0 {
		return result, nil
	}

	// Mutation phase. The used set is final; rewrite each touched file once.
	byFile := make(map[string][]domain.FunctionDef)
	for _, d := range unreachable {
		byFile[d.File] = append(byFile[d.File], d)
	}
	for file, targets := range byFile {
		newContent := u.remover.Remove(contents[file], targets)
		if err := os.WriteFile(file, []byte(newContent), 0644); err != nil {
			return nil, fmt.Errorf("failed to rewrite %s: %w", file, err)
		}
		result.FilesRewritten++
	}

	return result, nil
}

// resolveBarrel reads the barrel file and returns its edges. A missing
// barrel yields no edges: barrel-indirect symbols then never resolve and the
// affected functions count as unused unless referenced directly.
func (u *SweepUseCase) resolveBarrel(root string, warn func(string, ...any)) ([]domain.ReexportEdge, []string) {
	content, err := u.reader.ReadFile(u.layout.BarrelPath(root))
	if err != nil {
		if !os.IsNotExist(err) {
			warn("skipping barrel file: %v", err)
		}
		return nil, nil
	}

	edges, ambiguous := u.resolver.Resolve(content)
	for _, name := range ambiguous {
		warn("barrel exposes %q more than once; only direct usage counts for it", name)
	}
	return edges, ambiguous
}

// collectUsage unions extractor output over every consumer file. Unreadable
// files are skipped with a warning; client components are not scanned since
// their imports never execute the query layer on the server.
func (u *SweepUseCase) collectUsage(
	root string,
	report *domain.SweepReport,
	warn func(string, ...any),
	progress ProgressFunc,
) (*domain.UsageSet, error) {
	consumers, err := u.layout.ConsumerFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate consumer files: %w", err)
	}

	used := domain.NewUsageSet()
	for i, consumer := range consumers {
		if progress != nil {
			progress(i+1, len(consumers), consumer.Path)
		}

		content, err := u.reader.ReadFile(consumer.Path)
		if err != nil {
			warn("skipping %s: %v", fs.AppRelative(root, consumer.Path), err)
			continue
		}

		switch consumer.Category {
		case domain.CategoryPage, domain.CategoryComponent:
			if analyzer.IsClientComponent(content) {
				continue
			}
		}

		used.AddAll(u.extractor.Extract(content))
		report.FilesScanned++
	}
	return used, nil
}

// parseDefinitions parses every definition file, returning all definitions
// in file order plus each file's original content for the mutation phase. A
// file whose braces never balance is excluded entirely with a warning.
func (u *SweepUseCase) parseDefinitions(root string, warn func(string, ...any)) ([]domain.FunctionDef, map[string]string, error) {
	files, err := u.layout.DefinitionFiles(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate definition files: %w", err)
	}

	var defs []domain.FunctionDef
	contents := make(map[string]string)

	for _, file := range files {
		content, err := u.reader.ReadFile(file)
		if err != nil {
			warn("skipping %s: %v", fs.AppRelative(root, file), err)
			continue
		}

		module := fs.ModuleName(file)
		parsed, err := u.parser.Parse(module, content)
		if err != nil {
			warn("skipping %s: %v", fs.AppRelative(root, file), err)
			continue
		}

		contents[file] = content
		for i := range parsed {
			parsed[i].File = file
		}
		defs = append(defs, parsed...)
	}
	return defs, contents, nil
}

// groupByModule builds the per-module report from unreachable definitions,
// sorted by module name with functions in file order.
func groupByModule(root string, unreachable []domain.FunctionDef) []domain.ModuleReport {
	byModule := make(map[string]*domain.ModuleReport)
	var order []string

	for _, d := range unreachable {
		m, ok := byModule[d.Module]
		if !ok {
			m = &domain.ModuleReport{Module: d.Module, File: fs.AppRelative(root, d.File)}
			byModule[d.Module] = m
			order = append(order, d.Module)
		}
		m.Functions = append(m.Functions, domain.RemovedFunction{Name: d.Name})
	}

	sort.Strings(order)
	out := make([]domain.ModuleReport, 0, len(order))
	for _, name := range order {
		out = append(out, *byModule[name])
	}
	return out
}
