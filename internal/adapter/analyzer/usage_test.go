package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wozhendeai/grip/internal/domain"
)

const prefix = "@/db/queries"

func extract(t *testing.T, content string) []domain.UsageKey {
	t.Helper()
	return NewUsageExtractor(prefix, false).Extract(content)
}

func TestUsageExtractor_StaticImport(t *testing.T) {
	content := `import { getWidget, archiveWidget } from '@/db/queries/widgets'

export default async function Page() {
  const widget = await getWidget('w1')
  return <div>{widget.name}</div>
}
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "widgets", Symbol: "getWidget"}}, keys)
}

func TestUsageExtractor_NoCallNoUse(t *testing.T) {
	content := `import { getWidget } from '@/db/queries/widgets'
`
	assert.Empty(t, extract(t, content))
}

func TestUsageExtractor_AliasResolvesToOrigin(t *testing.T) {
	content := `import { getWidget as fetchWidget } from '@/db/queries/widgets'

const w = await fetchWidget('w1')
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "widgets", Symbol: "getWidget"}}, keys)
}

func TestUsageExtractor_AliasOriginNameAlsoCounts(t *testing.T) {
	// The consumer renamed the import but calls a local of the origin name.
	// Either name adjacent to a call parenthesis counts; the key always
	// records the origin.
	content := `import { getWidget as fetchWidget } from '@/db/queries/widgets'

const getWidget = makeLoader()
getWidget('w1')
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "widgets", Symbol: "getWidget"}}, keys)
}

func TestUsageExtractor_TypeOnlyImportSkipped(t *testing.T) {
	content := `import { type Widget, getWidget } from '@/db/queries/widgets'

const w: Widget = await getWidget('w1')
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "widgets", Symbol: "getWidget"}}, keys)
}

func TestUsageExtractor_MultiLineStaticImport(t *testing.T) {
	content := `import {
  getWidget,
  archiveWidget,
} from '@/db/queries/widgets'

await getWidget('w1')
await archiveWidget('w2')
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{
		{Module: "widgets", Symbol: "archiveWidget"},
		{Module: "widgets", Symbol: "getWidget"},
	}, keys)
}

func TestUsageExtractor_BarrelImportUsesSentinel(t *testing.T) {
	content := `import { removeWidget } from '@/db/queries'

await removeWidget('w1')
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: domain.BarrelModule, Symbol: "removeWidget"}}, keys)
}

func TestUsageExtractor_DynamicImport(t *testing.T) {
	content := `export async function POST(req: Request) {
  const { markPaid } = await import('@/db/queries/payments')
  await markPaid(req.body.id)
}
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "payments", Symbol: "markPaid"}}, keys)
}

func TestUsageExtractor_DynamicImportMultiLine(t *testing.T) {
	content := `const { markPaid, listPending } =
  await import(
    '@/db/queries/pending-payments'
  )

await markPaid('p1')
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "pending-payments", Symbol: "markPaid"}}, keys)
}

func TestUsageExtractor_HyphenatedModuleName(t *testing.T) {
	content := `import { getSettings } from '@/db/queries/repo-settings'

const s = await getSettings()
`
	keys := extract(t, content)
	assert.Equal(t, []domain.UsageKey{{Module: "repo-settings", Symbol: "getSettings"}}, keys)
}

func TestUsageExtractor_ValueReferenceDoesNotCountInCallMode(t *testing.T) {
	content := `import { getWidget } from '@/db/queries/widgets'

const loaders = [getWidget]
`
	assert.Empty(t, extract(t, content))
}

func TestUsageExtractor_ReferenceMode(t *testing.T) {
	e := NewUsageExtractor(prefix, true)

	used := `import { getWidget } from '@/db/queries/widgets'

const loaders = [getWidget]
`
	keys := e.Extract(used)
	assert.Equal(t, []domain.UsageKey{{Module: "widgets", Symbol: "getWidget"}}, keys)

	// The import clause itself must not count as a reference.
	importOnly := `import { getWidget } from '@/db/queries/widgets'
`
	assert.Empty(t, e.Extract(importOnly))
}

func TestUsageExtractor_OtherImportPathsIgnored(t *testing.T) {
	content := `import { useState } from 'react'
import { formatDate } from '@/lib/format'

useState()
formatDate()
`
	assert.Empty(t, extract(t, content))
}

func TestUsageExtractor_NoFalseMatchOnLongerPrefix(t *testing.T) {
	// @/db/queries-v2/... must not match the @/db/queries prefix.
	content := `import { getWidget } from '@/db/queries-v2/widgets'

await getWidget('w1')
`
	assert.Empty(t, extract(t, content))
}
