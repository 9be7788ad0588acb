package port

import "github.com/wozhendeai/grip/internal/domain"

// UsageExtractor scans consumer file text for query-layer symbols that are
// imported and called. Pure function of the input text.
type UsageExtractor interface {
	Extract(content string) []domain.UsageKey
}

// ReexportResolver scans the barrel file text for re-export edges. The second
// return value lists exposed names that appear more than once; edges for those
// names must not be trusted.
type ReexportResolver interface {
	Resolve(content string) ([]domain.ReexportEdge, []string)
}

// BoundaryParser scans a definition file for exported async functions and
// their exact line spans. Returns an error when a span cannot be determined,
// in which case the whole file must be left alone.
type BoundaryParser interface {
	Parse(module, content string) ([]domain.FunctionDef, error)
}

// Remover deletes the given definition spans from file text. Pure text to
// text; writing the result back is the caller's concern.
type Remover interface {
	Remove(content string, defs []domain.FunctionDef) string
}
