package analyzer

import (
	"regexp"
	"strings"

	"github.com/wozhendeai/grip/internal/domain"
)

// ReexportResolver reads the barrel file and produces the alias edges that
// let barrel-imported symbols be traced back to their origin module.
type ReexportResolver struct{}

func NewReexportResolver() *ReexportResolver {
	return &ReexportResolver{}
}

// export { a, b as c, type T } from './module'
var reexportRe = regexp.MustCompile(`export\s*\{([^}]+)\}\s*from\s*['"]\./?([\w-]+)['"]`)

// Resolve returns one edge per re-exported value symbol. Type-only entries
// are discarded. The second return value lists exposed names that occur more
// than once; resolution through those names is ambiguous and the caller must
// not pick an edge for them.
func (r *ReexportResolver) Resolve(content string) ([]domain.ReexportEdge, []string) {
	var edges []domain.ReexportEdge
	counts := make(map[string]int)

	for _, m := range reexportRe.FindAllStringSubmatch(content, -1) {
		module := m[2]
		for _, raw := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(raw)
			if name == "" || strings.HasPrefix(name, "type ") {
				continue
			}
			origin, exposed := name, name
			if before, after, ok := strings.Cut(name, " as "); ok {
				origin = strings.TrimSpace(before)
				exposed = strings.TrimSpace(after)
			}
			if origin == "" || exposed == "" {
				continue
			}
			edges = append(edges, domain.ReexportEdge{
				Exposed:      exposed,
				OriginModule: module,
				OriginSymbol: origin,
			})
			counts[exposed]++
		}
	}

	var duplicates []string
	for _, e := range edges {
		if counts[e.Exposed] > 1 {
			duplicates = append(duplicates, e.Exposed)
			counts[e.Exposed] = 0 // report each name once
		}
	}
	return edges, duplicates
}
