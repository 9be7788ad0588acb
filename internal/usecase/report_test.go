package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wozhendeai/grip/internal/domain"
)

func TestRenderSweepText_Clean(t *testing.T) {
	out := RenderSweepText(&domain.SweepReport{
		FilesScanned:   12,
		UsedSymbols:    8,
		TotalFunctions: 8,
	})

	assert.Contains(t, out, "Scanned 12 consumer files, 8 used symbols, 8 query functions.")
	assert.Contains(t, out, "No unused query functions found.")
	assert.NotContains(t, out, "--apply")
}

func TestRenderSweepText_DryRunVsApplied(t *testing.T) {
	report := &domain.SweepReport{
		FilesScanned:   3,
		UsedSymbols:    1,
		TotalFunctions: 3,
		Unused: []domain.ModuleReport{
			{
				Module: "widgets",
				File:   "db/queries/widgets.ts",
				Functions: []domain.RemovedFunction{
					{Name: "deleteWidget"},
					{Name: "purgeWidgets"},
				},
			},
		},
	}

	out := RenderSweepText(report)
	assert.Contains(t, out, "Found 2 unused query functions:")
	assert.Contains(t, out, "db/queries/widgets.ts:")
	assert.Contains(t, out, "- deleteWidget")
	assert.Contains(t, out, "- purgeWidgets")
	assert.Contains(t, out, "Dry run - no files modified. Re-run with --apply to delete.")

	report.Applied = true
	out = RenderSweepText(report)
	assert.Contains(t, out, "Removed the functions listed above.")
	assert.NotContains(t, out, "Dry run")
}

func TestRenderDocsMarkdown(t *testing.T) {
	docs := &domain.APIDocs{
		Routes: []domain.RouteDoc{
			{Path: "/api/widgets", Methods: []string{"GET", "POST"}, QueriesUsed: []string{"widgets.getWidget"}},
			{Path: "/api/auth/login", Methods: []string{"POST"}, AuthRequired: true, Description: "Log in | start a session"},
		},
		Pages: []domain.PageDoc{
			{Route: "/widgets", File: "app/widgets/page.tsx", QueriesUsed: []string{"widgets.getWidget"}},
		},
		Queries: []domain.QueryDoc{
			{Name: "getWidget", Module: "widgets", Operation: "READ", Description: "Fetch a single widget."},
			{Name: "purgeWidgets", Module: "widgets", Operation: "READ"},
		},
	}

	out := RenderDocsMarkdown(docs)

	assert.Contains(t, out, "Generated: 2 API routes, 1 SSR pages, 1/2 DB queries used.")

	// Routes group by first path segment after /api.
	assert.Contains(t, out, "### Auth")
	assert.Contains(t, out, "### Widgets")
	assert.Contains(t, out, "| `/api/widgets` | `GET`, `POST` | - |")
	// Pipes inside descriptions must not break the table.
	assert.Contains(t, out, "Log in \\| start a session")

	assert.Contains(t, out, "## SSR Pages")
	assert.Contains(t, out, "| `/widgets` | `app/widgets/page.tsx` | `widgets.getWidget` |")

	// Only queries referenced by a page or route are listed.
	assert.Contains(t, out, "## Database Queries (Used)")
	assert.Contains(t, out, "| `getWidget` | R | Fetch a single widget. |")
	assert.NotContains(t, out, "purgeWidgets")
}
