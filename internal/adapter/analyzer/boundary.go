package analyzer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/wozhendeai/grip/internal/domain"
)

// ErrUnbalancedBraces is returned when a function body never returns to brace
// depth zero. The file's spans cannot be trusted, so the caller must treat
// the whole file as unparseable rather than guess a truncated span.
var ErrUnbalancedBraces = errors.New("unbalanced braces")

// BoundaryParser locates every top-level exported async function in a
// definition file by brace-depth tracking. Brace characters inside strings
// and template literals are counted like any other; the parser is only
// correct for sources whose brace characters are balanced.
type BoundaryParser struct{}

func NewBoundaryParser() *BoundaryParser {
	return &BoundaryParser{}
}

var exportAsyncFuncRe = regexp.MustCompile(`^export\s+async\s+function\s+(\w+)\s*\(`)

// Parse returns the definitions in file order. Spans are 0-based, inclusive,
// and disjoint; a JSDoc block immediately preceding the declaration is folded
// into the span so removal never strands documentation.
func (p *BoundaryParser) Parse(module, content string) ([]domain.FunctionDef, error) {
	lines := strings.Split(content, "\n")
	var defs []domain.FunctionDef

	i := 0
	for i < len(lines) {
		line := lines[i]

		jsdocStart := -1
		if strings.HasPrefix(strings.TrimSpace(line), "/**") {
			jsdocStart = i
			for i < len(lines) && !strings.Contains(lines[i], "*/") {
				i++
			}
			i++ // past the closing */
			if i >= len(lines) {
				break
			}
			line = lines[i]
		}

		m := exportAsyncFuncRe.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}

		start := i
		if jsdocStart >= 0 {
			start = jsdocStart
		}

		end, err := findBodyEnd(lines, i)
		if err != nil {
			return nil, fmt.Errorf("function %s.%s starting at line %d: %w", module, m[1], i, err)
		}

		defs = append(defs, domain.FunctionDef{
			Name:      m[1],
			Module:    module,
			StartLine: start,
			EndLine:   end,
			RawText:   strings.Join(lines[start:end+1], "\n"),
		})
		i = end + 1
	}

	return defs, nil
}

// findBodyEnd scans forward from the declaration line and returns the line on
// which brace depth first returns to zero after having gone positive.
func findBodyEnd(lines []string, from int) (int, error) {
	depth := 0
	opened := false

	for j := from; j < len(lines); j++ {
		for _, ch := range lines[j] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth == 0 {
			return j, nil
		}
	}
	return 0, ErrUnbalancedBraces
}
