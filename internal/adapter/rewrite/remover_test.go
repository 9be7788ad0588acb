package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wozhendeai/grip/internal/adapter/analyzer"
	"github.com/wozhendeai/grip/internal/domain"
)

const widgetsFile = `import { db } from '@/db'

/**
 * Fetch a single widget.
 */
export async function getWidget(id: string) {
  return db.get(id)
}

export async function archiveWidget(id: string) {
  await db.update(id, { archived: true })
}

export async function deleteWidget(id: string) {
  await db.delete(id)
}
`

func TestRemover_RemovesOnlyTargetSpan(t *testing.T) {
	parser := analyzer.NewBoundaryParser()
	defs, err := parser.Parse("widgets", widgetsFile)
	require.NoError(t, err)
	require.Len(t, defs, 3)

	// Remove the middle function only.
	result := New().Remove(widgetsFile, defs[1:2])
	assert.NotContains(t, result, "archiveWidget")

	after, err := parser.Parse("widgets", result)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, "getWidget", after[0].Name)
	assert.Equal(t, "deleteWidget", after[1].Name)

	// Surviving definitions are byte-identical.
	assert.Equal(t, defs[0].RawText, after[0].RawText)
	assert.Equal(t, defs[2].RawText, after[1].RawText)
}

func TestRemover_MultipleSpansInOnePass(t *testing.T) {
	parser := analyzer.NewBoundaryParser()
	defs, err := parser.Parse("widgets", widgetsFile)
	require.NoError(t, err)

	// First and last together; deletion order must not disturb the span in
	// between.
	result := New().Remove(widgetsFile, []domain.FunctionDef{defs[0], defs[2]})

	after, err := parser.Parse("widgets", result)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "archiveWidget", after[0].Name)
	assert.Equal(t, defs[1].RawText, after[0].RawText)
}

func TestRemover_Idempotent(t *testing.T) {
	parser := analyzer.NewBoundaryParser()
	defs, err := parser.Parse("widgets", widgetsFile)
	require.NoError(t, err)

	once := New().Remove(widgetsFile, defs[1:2])

	// Recompute spans against the modified file, as the pipeline would, and
	// target the same name again: it no longer exists, so nothing changes.
	after, err := parser.Parse("widgets", once)
	require.NoError(t, err)
	var again []domain.FunctionDef
	for _, d := range after {
		if d.Name == "archiveWidget" {
			again = append(again, d)
		}
	}
	twice := New().Remove(once, again)
	assert.Equal(t, once, twice)
}

func TestRemover_CollapsesBlankRuns(t *testing.T) {
	content := "const a = 1\n\n\n\nconst b = 2\n"
	result := New().Remove(content, nil)
	assert.Equal(t, "const a = 1\n\nconst b = 2\n", result)
}

func TestRemover_KeepsSingleBlankLines(t *testing.T) {
	content := "const a = 1\n\nconst b = 2\n"
	result := New().Remove(content, nil)
	assert.Equal(t, content, result)
}

func TestRemover_IgnoresOutOfRangeSpans(t *testing.T) {
	content := "const a = 1\n"
	result := New().Remove(content, []domain.FunctionDef{{StartLine: 5, EndLine: 9}})
	assert.Equal(t, content, result)
}
