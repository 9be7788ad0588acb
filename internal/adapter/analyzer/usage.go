package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wozhendeai/grip/internal/domain"
)

// UsageExtractor finds query-layer symbols that a consumer file imports and
// calls. It is lexical, not syntactic: imports are matched by pattern and a
// symbol counts as used when its name occurs outside the import clause,
// immediately followed by an opening parenthesis. A symbol only ever passed
// around as a value is therefore missed (known false negative), and an
// unrelated local of the same name can count (known false positive). The
// "reference" match mode trades the former for more of the latter by counting
// any occurrence of the name.
type UsageExtractor struct {
	staticRe  *regexp.Regexp
	barrelRe  *regexp.Regexp
	dynamicRe *regexp.Regexp

	matchReferences bool
}

// NewUsageExtractor builds an extractor for the given query-layer import
// prefix, e.g. "@/db/queries". matchReferences selects the looser usage rule.
func NewUsageExtractor(importPrefix string, matchReferences bool) *UsageExtractor {
	prefix := regexp.QuoteMeta(importPrefix)
	return &UsageExtractor{
		staticRe:        regexp.MustCompile(`import\s*\{([^}]+)\}\s*from\s*['"]` + prefix + `/([\w-]+)['"]`),
		barrelRe:        regexp.MustCompile(`import\s*\{([^}]+)\}\s*from\s*['"]` + prefix + `['"]`),
		dynamicRe:       regexp.MustCompile(`\{\s*([\w\s,]+?)\s*\}\s*=\s*await\s+import\s*\(\s*['"]` + prefix + `/([\w-]+)['"]`),
		matchReferences: matchReferences,
	}
}

// importBinding is one name brought in by an import clause. Local differs
// from Origin only when the consumer renamed it with "as".
type importBinding struct {
	module string
	origin string
	local  string
}

// Extract returns the set of (module, symbol) keys this file both imports and
// uses. Symbols imported from the bare prefix are keyed under
// domain.BarrelModule since their origin module is not yet known.
func (e *UsageExtractor) Extract(content string) []domain.UsageKey {
	var bindings []importBinding

	collect := func(re *regexp.Regexp, barrel bool) {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			module := domain.BarrelModule
			if !barrel {
				module = m[2]
			}
			for _, b := range parseBindings(m[1]) {
				b.module = module
				bindings = append(bindings, b)
			}
		}
	}
	collect(e.staticRe, false)
	collect(e.barrelRe, true)
	collect(e.dynamicRe, false)

	if len(bindings) == 0 {
		return nil
	}

	// Call sites are looked for outside the import clauses themselves, so
	// that the import does not count as its own usage.
	body := e.blankImportClauses(content)

	used := make(map[domain.UsageKey]struct{})
	for _, b := range bindings {
		if e.nameUsed(body, b.origin) || (b.local != b.origin && e.nameUsed(body, b.local)) {
			used[domain.UsageKey{Module: b.module, Symbol: b.origin}] = struct{}{}
		}
	}

	keys := make([]domain.UsageKey, 0, len(used))
	for k := range used {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Module != keys[j].Module {
			return keys[i].Module < keys[j].Module
		}
		return keys[i].Symbol < keys[j].Symbol
	})
	return keys
}

// parseBindings splits an import clause body into bindings, dropping
// type-only entries and resolving "origin as local" renames.
func parseBindings(clause string) []importBinding {
	var out []importBinding
	for _, raw := range strings.Split(clause, ",") {
		name := strings.TrimSpace(raw)
		if name == "" || strings.HasPrefix(name, "type ") {
			continue
		}
		origin, local := name, name
		if before, after, ok := strings.Cut(name, " as "); ok {
			origin = strings.TrimSpace(before)
			local = strings.TrimSpace(after)
		}
		if origin == "" {
			continue
		}
		out = append(out, importBinding{origin: origin, local: local})
	}
	return out
}

// blankImportClauses overwrites every matched import clause with spaces so
// that positions are preserved but the clause text cannot match a call site.
func (e *UsageExtractor) blankImportClauses(content string) string {
	body := []byte(content)
	for _, re := range []*regexp.Regexp{e.staticRe, e.barrelRe, e.dynamicRe} {
		for _, span := range re.FindAllStringIndex(content, -1) {
			for i := span[0]; i < span[1]; i++ {
				if body[i] != '\n' {
					body[i] = ' '
				}
			}
		}
	}
	return string(body)
}

func (e *UsageExtractor) nameUsed(body, name string) bool {
	pattern := `\b` + regexp.QuoteMeta(name) + `\s*\(`
	if e.matchReferences {
		pattern = `\b` + regexp.QuoteMeta(name) + `\b`
	}
	return regexp.MustCompile(pattern).MatchString(body)
}
