package analyzer

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/wozhendeai/grip/internal/domain"
)

var httpMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

var (
	// Function-level JSDoc directly above an exported HTTP handler. The
	// inner pattern refuses to cross a */ so an earlier block in the file
	// cannot swallow the one attached to the handler.
	handlerJSDocRe = regexp.MustCompile(`(?s)/\*\*((?:[^*]|\*[^/])*)\*/\s*export\s+(?:async\s+)?function\s+(?:GET|POST|PUT|DELETE|PATCH)\b`)
	// File-level JSDoc at the very top of the file.
	fileJSDocRe = regexp.MustCompile(`(?s)^\s*/\*\*(.*?)\*/`)
	// Lines like "POST /api/..." inside a JSDoc are routing notes, not prose.
	methodPathLineRe = regexp.MustCompile(`^(GET|POST|PUT|DELETE|PATCH)\s+/`)

	authPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)getSession\s*\(`),
		regexp.MustCompile(`(?i)auth\.api\.`),
		regexp.MustCompile(`(?i)requireAuth`),
		regexp.MustCompile(`(?i)session\s*=\s*await`),
		regexp.MustCompile(`(?i)headers\(\).*authorization`),
	}
)

// RouteScanner extracts documentation metadata from an API route file:
// exported HTTP methods, a description, whether it appears to require
// authentication, and which query-layer functions it calls.
type RouteScanner struct {
	extractor *UsageExtractor

	methodFuncRes  map[string]*regexp.Regexp
	methodConstRes map[string]*regexp.Regexp
}

func NewRouteScanner(extractor *UsageExtractor) *RouteScanner {
	funcRes := make(map[string]*regexp.Regexp, len(httpMethods))
	constRes := make(map[string]*regexp.Regexp, len(httpMethods))
	for _, m := range httpMethods {
		funcRes[m] = regexp.MustCompile(`export\s+(?:async\s+)?function\s+` + m + `\b`)
		constRes[m] = regexp.MustCompile(`export\s+const\s+` + m + `\s*=`)
	}
	return &RouteScanner{
		extractor:      extractor,
		methodFuncRes:  funcRes,
		methodConstRes: constRes,
	}
}

// Scan builds a RouteDoc from a route file's root-relative path and content.
func (s *RouteScanner) Scan(relPath, appDir, content string) domain.RouteDoc {
	doc := domain.RouteDoc{
		Path: RoutePath(relPath, appDir),
		File: relPath,
	}

	for _, m := range httpMethods {
		if s.methodFuncRes[m].MatchString(content) || s.methodConstRes[m].MatchString(content) {
			doc.Methods = append(doc.Methods, m)
		}
	}

	if m := handlerJSDocRe.FindStringSubmatch(content); m != nil {
		doc.Description = BlockDescription(m[1], methodPathLineRe.MatchString)
	} else if m := fileJSDocRe.FindStringSubmatch(content); m != nil {
		doc.Description = BlockDescription(m[1], methodPathLineRe.MatchString)
	}

	for _, re := range authPatterns {
		if re.MatchString(content) {
			doc.AuthRequired = true
			break
		}
	}

	doc.QueriesUsed = QualifiedUsage(s.extractor.Extract(content))
	return doc
}

// QualifiedUsage renders concrete usage keys as "module.symbol" strings,
// sorted. Barrel-indirect keys are skipped since their module is unknown.
func QualifiedUsage(keys []domain.UsageKey) []string {
	var out []string
	for _, k := range keys {
		if k.Module == domain.BarrelModule {
			continue
		}
		out = append(out, k.Module+"."+k.Symbol)
	}
	sort.Strings(out)
	return out
}

// RoutePath converts a route file's root-relative path into its URL path:
// app/api/widgets/[id]/route.ts becomes /api/widgets/[id].
func RoutePath(relPath, appDir string) string {
	p := strings.TrimSuffix(filepathToSlash(relPath), "/route.ts")
	p = strings.TrimPrefix(p, filepathToSlash(appDir))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// PageRoute converts a page file's path relative to the app directory into
// its URL path, dropping the file name, route groups like (main), and
// underscore-prefixed private directories.
func PageRoute(relToApp string) string {
	parts := strings.Split(filepathToSlash(relToApp), "/")
	if len(parts) > 0 {
		parts = parts[:len(parts)-1] // drop page.tsx / layout.tsx
	}

	var kept []string
	for _, p := range parts {
		if strings.HasPrefix(p, "(") && strings.HasSuffix(p, ")") {
			continue
		}
		if strings.HasPrefix(p, "_") {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}

// InferOperation guesses the CRUD class of a query from its name prefix.
func InferOperation(name string) string {
	lower := strings.ToLower(name)
	prefixes := []struct {
		op    string
		names []string
	}{
		{"READ", []string{"get", "find", "list", "fetch", "is", "has", "check"}},
		{"CREATE", []string{"create", "insert", "add"}},
		{"UPDATE", []string{"update", "set", "mark", "approve", "reject"}},
		{"DELETE", []string{"delete", "remove", "revoke"}},
	}
	for _, p := range prefixes {
		for _, n := range p.names {
			if strings.HasPrefix(lower, n) {
				return p.op
			}
		}
	}
	return "READ"
}

// IsClientComponent reports whether the file opts into client rendering with
// a 'use client' directive. Client components never run query functions
// server-side, so they are excluded from usage analysis.
func IsClientComponent(content string) bool {
	return strings.Contains(content, "'use client'") || strings.Contains(content, `"use client"`)
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
