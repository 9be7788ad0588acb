package analyzer

import (
	"regexp"
	"strings"
)

var jsdocLinePrefix = regexp.MustCompile(`^\s*\*\s?`)

// BlockDescription flattens the inner text of a /** ... */ block into a
// single line, dropping empty lines, @tag lines, and any line matched by the
// extra skip filters.
func BlockDescription(block string, skip ...func(string) bool) string {
	var parts []string
line:
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(jsdocLinePrefix.ReplaceAllString(raw, ""))
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		for _, f := range skip {
			if f(line) {
				continue line
			}
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// LeadingJSDoc returns the inner text of a /** ... */ block at the very start
// of text, or "" when text does not begin with one.
func LeadingJSDoc(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if !strings.HasPrefix(trimmed, "/**") {
		return ""
	}
	rest := trimmed[len("/**"):]
	end := strings.Index(rest, "*/")
	if end < 0 {
		return ""
	}
	return rest[:end]
}
