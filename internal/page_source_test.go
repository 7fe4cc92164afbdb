package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sneaken/vimium/pkg/page"
)

func TestSnapshotFromDocument(t *testing.T) {
	doc, err := page.ParseString(`
		<label for="q">Search:</label>
		<input id="q" type="search">
		<a href="/docs">Docs</a>`)
	require.NoError(t, err)

	snapshot := SnapshotFromDocument(doc)
	require.Len(t, snapshot.Candidates, 2)

	input := snapshot.Candidates[0]
	assert.Equal(t, "input", input.Tag)
	assert.Equal(t, "q", input.ElementID)
	assert.Equal(t, 0, input.Rect.Y)

	link := snapshot.Candidates[1]
	assert.Equal(t, "/docs", link.Href)
	assert.Equal(t, 1, link.Rect.Y)
	assert.Equal(t, len("Docs </docs>"), link.Rect.Width)

	assert.Equal(t, []Label{{For: "q", Text: "Search:"}}, snapshot.Labels)
}

func TestPageSourceFeedsFilterLabels(t *testing.T) {
	doc, err := page.ParseString(`
		<label for="q">Search:</label>
		<input id="q" type="search">
		<a href="/docs">Docs</a>`)
	require.NoError(t, err)

	markers, err := NewFilterMatcher().Build(mustSnapshot(t, StaticPageSource(doc)))
	require.NoError(t, err)
	require.Len(t, markers, 2)

	assert.Equal(t, "Search", markers[0].LinkText)
	assert.True(t, markers[0].ShowLinkText)
	assert.Equal(t, "Docs", markers[1].LinkText)
}

func TestPageSourceError(t *testing.T) {
	want := errors.New("browser gone")
	source := NewPageSource(func() (*page.Document, error) { return nil, want })

	_, err := source.Snapshot()
	assert.ErrorIs(t, err, want)
}

func mustSnapshot(t *testing.T, source Source) *Snapshot {
	t.Helper()
	snapshot, err := source.Snapshot()
	require.NoError(t, err)
	return snapshot
}
