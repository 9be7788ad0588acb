package rewrite

import (
	"sort"
	"strings"

	"github.com/wozhendeai/grip/internal/domain"
)

// Remover deletes definition spans from file text. Spans are removed from
// the highest start line down, so earlier spans keep their line numbers while
// later ones are cut; a final pass collapses runs of blank lines left behind.
// The operation is idempotent: re-applying a removal set whose spans are
// already gone (after recomputing spans) changes nothing.
type Remover struct{}

func New() *Remover {
	return &Remover{}
}

// Remove returns content with exactly the given spans absent. Only whole
// lines are removed; no other region is altered beyond the blank-line
// collapse.
func (r *Remover) Remove(content string, defs []domain.FunctionDef) string {
	lines := strings.Split(content, "\n")

	targets := make([]domain.FunctionDef, len(defs))
	copy(targets, defs)
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].StartLine > targets[j].StartLine
	})

	for _, d := range targets {
		if d.StartLine < 0 || d.EndLine >= len(lines) || d.StartLine > d.EndLine {
			continue
		}
		lines = append(lines[:d.StartLine], lines[d.EndLine+1:]...)
	}

	return strings.Join(collapseBlankRuns(lines), "\n")
}

// collapseBlankRuns reduces every run of two or more blank lines to a single
// blank line. Singleton blank lines are untouched.
func collapseBlankRuns(lines []string) []string {
	out := lines[:0:0]
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	return out
}
