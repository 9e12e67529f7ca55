package exports_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/internal/exports"
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/notify"
)

var day = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func sampleArticles() []articles.Article {
	return []articles.Article{
		articles.New("1", "Brot", "1 Stk", decimal.RequireFromString("3.5"), articles.WithCategory("Backwaren")),
		articles.New("2", "Milch", "1 l", decimal.RequireFromString("1.19"), articles.WithAvailable(false)),
	}
}

func TestWriteNumbersFiles(t *testing.T) {
	dir := exports.NewDir(t.TempDir(), "demo", "Biohof")

	first, err := dir.Write(sampleArticles(), day)
	require.NoError(t, err)
	assert.Equal(t, "Biohof2026-10-18_1.csv", first)

	second, err := dir.Write(sampleArticles(), day)
	require.NoError(t, err)
	assert.Equal(t, "Biohof2026-10-18_2.csv", second)

	assert.Equal(t, "Biohof2026-10-18_3.csv", dir.NextName(day))
	assert.True(t, dir.Exists(first))

	list, err := dir.Read(second)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Backwaren", list[0].Category)
	assert.False(t, list[1].Available)
}

func TestListOrdersRunNumbersNumerically(t *testing.T) {
	root := t.TempDir()
	dir := exports.NewDir(root, "demo", "Biohof")
	require.NoError(t, os.MkdirAll(dir.Path(), 0o755))
	for _, name := range []string{"Biohof2026-10-18_10.csv", "Biohof2026-10-18_9.csv", "Biohof2026-10-17_3.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(dir.File(name), []byte("h\n"), 0o644))
	}

	names, err := dir.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Biohof2026-10-17_3.csv", "Biohof2026-10-18_9.csv", "Biohof2026-10-18_10.csv"}, names)

	latest, ok, err := dir.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Biohof2026-10-18_10.csv", latest)
}

func TestListMissingDirectory(t *testing.T) {
	dir := exports.NewDir(t.TempDir(), "demo", "Nobody")
	names, err := dir.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBaselineNone(t *testing.T) {
	dir := exports.NewDir(t.TempDir(), "demo", "Biohof")

	b, notes, err := dir.Baseline("")
	require.NoError(t, err)
	assert.Empty(t, b.File)
	assert.Empty(t, b.Articles)
	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindNoBaseline, notes[0].Kind)
	assert.Equal(t, "No previous CSV found for comparison.", notes[0].Message)
}

func TestBaselineRecordedAndAssumed(t *testing.T) {
	dir := exports.NewDir(t.TempDir(), "demo", "Biohof")
	first, err := dir.Write(sampleArticles(), day)
	require.NoError(t, err)
	second, err := dir.Write(sampleArticles()[:1], day)
	require.NoError(t, err)

	b, notes, err := dir.Baseline(first)
	require.NoError(t, err)
	assert.Equal(t, first, b.File)
	assert.True(t, b.Recorded)
	assert.Len(t, b.Articles, 2)
	assert.Empty(t, notes)

	b, notes, err = dir.Baseline("gone.csv")
	require.NoError(t, err)
	assert.Equal(t, second, b.File)
	assert.False(t, b.Recorded)
	assert.Len(t, b.Articles, 1)
	require.Len(t, notes, 1)
	assert.Equal(t, "It was assumed '"+second+"' was the last CSV imported into Foodsoft.", notes[0].Message)
}

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, exports.WriteXLSX(path, sampleArticles()))

	list, err := exports.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Brot", list[0].Name)
	assert.True(t, decimal.RequireFromString("1.19").Equal(list[1].PriceNet))
	assert.False(t, list[1].Available)
}
