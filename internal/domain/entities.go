package domain

import "sort"

// BarrelModule is the sentinel module recorded when a consumer imports from
// the aggregating index file rather than a concrete module. The true origin
// is only known after re-export edges have been resolved.
const BarrelModule = "__barrel__"

// FunctionDef is one exported async function found in a definition file.
// StartLine..EndLine is inclusive and 0-based; it covers an attached leading
// JSDoc block and the whole body, balanced to brace depth zero.
type FunctionDef struct {
	Name      string
	Module    string
	File      string
	StartLine int
	EndLine   int
	RawText   string
}

// UsageKey identifies one imported-and-called symbol. Module is the concrete
// module stem, or BarrelModule when the import came through the index file.
type UsageKey struct {
	Module string
	Symbol string
}

// ReexportEdge maps a name exposed by the barrel file to its origin.
// OriginSymbol equals Exposed unless the barrel used an alias.
type ReexportEdge struct {
	Exposed      string
	OriginModule string
	OriginSymbol string
}

// UsageSet accumulates usage keys across all consumer files. Append-only
// during the analysis phase; plain set union, so accumulation order is
// irrelevant.
type UsageSet struct {
	keys map[UsageKey]struct{}
}

func NewUsageSet() *UsageSet {
	return &UsageSet{keys: make(map[UsageKey]struct{})}
}

func (s *UsageSet) Add(k UsageKey) {
	s.keys[k] = struct{}{}
}

func (s *UsageSet) AddAll(keys []UsageKey) {
	for _, k := range keys {
		s.Add(k)
	}
}

func (s *UsageSet) Contains(k UsageKey) bool {
	_, ok := s.keys[k]
	return ok
}

func (s *UsageSet) Len() int {
	return len(s.keys)
}

// Keys returns the accumulated keys sorted by module then symbol.
func (s *UsageSet) Keys() []UsageKey {
	out := make([]UsageKey, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Module != out[j].Module {
			return out[i].Module < out[j].Module
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// FileCategory labels a consumer file by the layout convention it was found
// under. Pages and components are only scanned when they are server-side.
type FileCategory string

const (
	CategoryPage      FileCategory = "page"
	CategoryRoute     FileCategory = "route"
	CategoryAction    FileCategory = "action"
	CategoryComponent FileCategory = "component"
	CategoryLib       FileCategory = "lib"
)

// ConsumerFile is one file to scan for symbol usage.
type ConsumerFile struct {
	Path     string
	Category FileCategory
}

// RemovedFunction is one entry in the per-module removal report.
type RemovedFunction struct {
	Name string `json:"name"`
}

// ModuleReport lists the unreachable functions of one definition file.
type ModuleReport struct {
	Module    string            `json:"module"`
	File      string            `json:"file"`
	Functions []RemovedFunction `json:"functions"`
}

// SweepReport is the structured result of a sweep run.
type SweepReport struct {
	FilesScanned   int            `json:"files_scanned"`
	UsedSymbols    int            `json:"used_symbols"`
	TotalFunctions int            `json:"total_functions"`
	Unused         []ModuleReport `json:"unused"`
	Applied        bool           `json:"applied"`
	Warnings       []string       `json:"warnings,omitempty"`
}

// UnusedCount returns the total number of unreachable functions in the report.
func (r *SweepReport) UnusedCount() int {
	n := 0
	for _, m := range r.Unused {
		n += len(m.Functions)
	}
	return n
}

// RouteDoc describes one API route file for documentation output.
type RouteDoc struct {
	Path         string   `json:"path"`
	File         string   `json:"file"`
	Methods      []string `json:"methods"`
	Description  string   `json:"description,omitempty"`
	AuthRequired bool     `json:"auth_required"`
	QueriesUsed  []string `json:"queries_used,omitempty"`
}

// PageDoc describes one server-rendered page that fetches from the query layer.
type PageDoc struct {
	Route       string   `json:"route"`
	File        string   `json:"file"`
	QueriesUsed []string `json:"queries_used,omitempty"`
}

// QueryDoc describes one exported query function for documentation output.
type QueryDoc struct {
	Name        string `json:"name"`
	Module      string `json:"module"`
	File        string `json:"file"`
	Operation   string `json:"operation"`
	Description string `json:"description,omitempty"`
}

// APIDocs is the combined documentation model rendered by `grip docs`.
type APIDocs struct {
	Routes  []RouteDoc `json:"routes"`
	Pages   []PageDoc  `json:"pages,omitempty"`
	Queries []QueryDoc `json:"queries,omitempty"`
}
