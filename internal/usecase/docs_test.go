package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wozhendeai/grip/config"
	"github.com/wozhendeai/grip/internal/adapter/analyzer"
	"github.com/wozhendeai/grip/internal/adapter/fs"
)

func newTestDocs() *DocsUseCase {
	cfg := config.DefaultConfig()
	layout := fs.NewLayout(cfg.Layout, cfg.Scan.Excludes)
	extractor := analyzer.NewUsageExtractor(cfg.Scan.ImportPrefix, false)
	return NewDocsUseCase(
		layout,
		fs.Reader{},
		extractor,
		analyzer.NewRouteScanner(extractor),
		analyzer.NewBoundaryParser(),
		cfg.Layout.AppDir,
		cfg.Layout.APIDir,
		cfg.Scan.ImportPrefix,
	)
}

func TestDocs_RoutesOnly(t *testing.T) {
	root := writeTree(t, projectFiles())

	docs, err := newTestDocs().Generate(root, false)
	require.NoError(t, err)

	require.Len(t, docs.Routes, 1)
	route := docs.Routes[0]
	assert.Equal(t, "/api/widgets", route.Path)
	assert.Equal(t, []string{"DELETE"}, route.Methods)
	assert.False(t, route.AuthRequired)
	// Barrel imports cannot be attributed to a module.
	assert.Empty(t, route.QueriesUsed)

	assert.Empty(t, docs.Pages)
	assert.Empty(t, docs.Queries)
}

func TestDocs_IncludeAllAddsPagesAndQueries(t *testing.T) {
	root := writeTree(t, projectFiles())

	docs, err := newTestDocs().Generate(root, true)
	require.NoError(t, err)

	// The client-side settings page is excluded.
	require.Len(t, docs.Pages, 1)
	page := docs.Pages[0]
	assert.Equal(t, "/widgets", page.Route)
	assert.Equal(t, "app/widgets/page.tsx", page.File)
	assert.Equal(t, []string{"widgets.getWidget"}, page.QueriesUsed)

	require.Len(t, docs.Queries, 4)
	byName := make(map[string]string)
	for _, q := range docs.Queries {
		assert.Equal(t, "widgets", q.Module)
		byName[q.Name] = q.Operation
	}
	assert.Equal(t, map[string]string{
		"getWidget":     "READ",
		"archiveWidget": "READ",
		"deleteWidget":  "DELETE",
		"purgeWidgets":  "READ",
	}, byName)

	for _, q := range docs.Queries {
		if q.Name == "getWidget" {
			assert.Equal(t, "Fetch a single widget.", q.Description)
		}
	}
}

func TestDocs_MissingAPIDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"db/queries/widgets.ts": widgetsTS,
	})

	_, err := newTestDocs().Generate(root, false)
	assert.ErrorIs(t, err, ErrAPIDirMissing)
}

func TestDocs_RouteWithAuthAndDescription(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app/api/sessions/route.ts": `import { auth } from '@/lib/auth'
import { listSessions } from '@/db/queries/sessions'

/**
 * List the caller's active sessions.
 */
export async function GET(req: Request) {
  const session = await auth.api.getSession(req)
  return Response.json(await listSessions(session.userId))
}
`,
	})

	docs, err := newTestDocs().Generate(root, false)
	require.NoError(t, err)

	require.Len(t, docs.Routes, 1)
	route := docs.Routes[0]
	assert.Equal(t, "/api/sessions", route.Path)
	assert.Equal(t, []string{"GET"}, route.Methods)
	assert.True(t, route.AuthRequired)
	assert.Equal(t, "List the caller's active sessions.", route.Description)
	assert.Equal(t, []string{"sessions.listSessions"}, route.QueriesUsed)
}
