package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wozhendeai/grip/internal/domain"
)

// RenderSweepText renders the sweep report for terminal output, grouped by
// module the way callers review it before applying.
func RenderSweepText(report *domain.SweepReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scanned %d consumer files, %d used symbols, %d query functions.\n",
		report.FilesScanned, report.UsedSymbols, report.TotalFunctions)

	if len(report.Unused) == 0 {
		b.WriteString("\nNo unused query functions found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\nFound %d unused query functions:\n\n", report.UnusedCount())
	for _, m := range report.Unused {
		fmt.Fprintf(&b, "  %s:\n", m.File)
		for _, f := range m.Functions {
			fmt.Fprintf(&b, "    - %s\n", f.Name)
		}
		b.WriteString("\n")
	}

	if report.Applied {
		b.WriteString("Removed the functions listed above.\n")
	} else {
		b.WriteString("Dry run - no files modified. Re-run with --apply to delete.\n")
	}
	return b.String()
}

// RenderDocsMarkdown renders the documentation model as Markdown tables:
// SSR pages, API routes grouped by first path segment, and the used subset
// of the query inventory.
func RenderDocsMarkdown(docs *domain.APIDocs) string {
	var b strings.Builder
	b.WriteString("# Server-Side Documentation\n\n")

	usedQueries := make(map[string]bool)
	for _, p := range docs.Pages {
		for _, q := range p.QueriesUsed {
			usedQueries[q] = true
		}
	}
	for _, r := range docs.Routes {
		for _, q := range r.QueriesUsed {
			usedQueries[q] = true
		}
	}

	var usedDocs []domain.QueryDoc
	for _, q := range docs.Queries {
		if usedQueries[q.Module+"."+q.Name] {
			usedDocs = append(usedDocs, q)
		}
	}

	summary := []string{fmt.Sprintf("%d API routes", len(docs.Routes))}
	if len(docs.Pages) > 0 {
		summary = append(summary, fmt.Sprintf("%d SSR pages", len(docs.Pages)))
	}
	if len(docs.Queries) > 0 {
		summary = append(summary, fmt.Sprintf("%d/%d DB queries used", len(usedDocs), len(docs.Queries)))
	}
	fmt.Fprintf(&b, "Generated: %s.\n\n", strings.Join(summary, ", "))

	if len(docs.Pages) > 0 {
		b.WriteString("## SSR Pages\n\n")
		b.WriteString("Pages that fetch data server-side.\n\n")
		b.WriteString("| Route | File | Queries Used |\n")
		b.WriteString("|-------|------|--------------|\n")
		for _, p := range docs.Pages {
			fmt.Fprintf(&b, "| `%s` | `%s` | %s |\n", p.Route, p.File, codeList(p.QueriesUsed))
		}
		b.WriteString("\n")
	}

	b.WriteString("## API Routes\n\n")
	for _, group := range groupRoutes(docs.Routes) {
		fmt.Fprintf(&b, "### %s\n\n", titleCase(group.name))
		b.WriteString("| Route | Methods | Auth | Description |\n")
		b.WriteString("|-------|---------|------|-------------|\n")
		for _, r := range group.routes {
			auth := "-"
			if r.AuthRequired {
				auth = "yes"
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n",
				r.Path, codeList(r.Methods), auth, tableCell(r.Description, 60))
		}
		b.WriteString("\n")
	}

	if len(usedDocs) > 0 {
		b.WriteString("## Database Queries (Used)\n\n")
		byModule := make(map[string][]domain.QueryDoc)
		var modules []string
		for _, q := range usedDocs {
			if _, ok := byModule[q.Module]; !ok {
				modules = append(modules, q.Module)
			}
			byModule[q.Module] = append(byModule[q.Module], q)
		}
		sort.Strings(modules)

		for _, module := range modules {
			fmt.Fprintf(&b, "### %s\n\n", module)
			b.WriteString("| Function | Op | Description |\n")
			b.WriteString("|----------|-----|-------------|\n")
			for _, q := range byModule[module] {
				fmt.Fprintf(&b, "| `%s` | %s | %s |\n", q.Name, opBadge(q.Operation), tableCell(q.Description, 50))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

type routeGroup struct {
	name   string
	routes []domain.RouteDoc
}

// groupRoutes groups routes by their first path segment after /api, sorted
// by group name.
func groupRoutes(routes []domain.RouteDoc) []routeGroup {
	byName := make(map[string][]domain.RouteDoc)
	var names []string

	for _, r := range routes {
		parts := strings.Split(r.Path, "/")
		name := "root"
		if len(parts) >= 3 {
			name = parts[2]
		}
		if _, ok := byName[name]; !ok {
			names = append(names, name)
		}
		byName[name] = append(byName[name], r)
	}

	sort.Strings(names)
	out := make([]routeGroup, 0, len(names))
	for _, name := range names {
		out = append(out, routeGroup{name: name, routes: byName[name]})
	}
	return out
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

func tableCell(s string, max int) string {
	if s == "" {
		return "-"
	}
	if len(s) > max {
		s = s[:max] + "..."
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func opBadge(op string) string {
	switch op {
	case "READ":
		return "R"
	case "CREATE":
		return "C"
	case "UPDATE":
		return "U"
	case "DELETE":
		return "D"
	}
	return "?"
}
