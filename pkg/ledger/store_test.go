package ledger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/ledger"
)

func TestStoreLoadMissingDocument(t *testing.T) {
	store := ledger.NewStore(filepath.Join(t.TempDir(), "config.json"))

	seg, err := store.Load("Biohof")
	require.NoError(t, err)
	assert.Equal(t, "Biohof", seg.Supplier)
	assert.Equal(t, 0, seg.ManualChanges.Len())
	assert.Empty(t, seg.LastExport)
	assert.True(t, seg.LastRun.IsZero())
}

func TestStoreSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := ledger.NewStore(path)

	seg := ledger.NewSegment("Biohof")
	seg.ManualChanges.Set("1001", articles.FieldPriceNet, ledger.Change{Replaced: "10", Manual: "12"})
	seg.LastExport = "Biohof2026-10-18_1.csv"
	seg.LastRun = time.Date(2026, 10, 18, 3, 0, 0, 0, time.UTC)
	seg.LastRunID = "run-1"
	require.NoError(t, store.Save(seg))

	loaded, err := store.Load("Biohof")
	require.NoError(t, err)
	assert.Equal(t, "Biohof2026-10-18_1.csv", loaded.LastExport)
	assert.True(t, seg.LastRun.Equal(loaded.LastRun))
	assert.Equal(t, "run-1", loaded.LastRunID)
	c, ok := loaded.ManualChanges.Get("1001", articles.FieldPriceNet)
	require.True(t, ok)
	assert.Equal(t, ledger.Value("12"), c.Manual)

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStorePreservesOtherSegmentsAndKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{
		"Other": {"manual changes": {}, "custom": 42},
		"Biohof": {"manual changes": {}, "categories": ["Obst", "Gemüse"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store := ledger.NewStore(path)
	seg, err := store.Load("Biohof")
	require.NoError(t, err)

	raw, ok := seg.Extra("categories")
	require.True(t, ok)
	assert.JSONEq(t, `["Obst", "Gemüse"]`, string(raw))

	seg.ManualChanges.Set("1", articles.FieldName, ledger.Change{Replaced: "a", Manual: "b"})
	require.NoError(t, store.Save(seg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &saved))

	assert.JSONEq(t, `42`, string(saved["Other"]["custom"]))
	assert.JSONEq(t, `["Obst", "Gemüse"]`, string(saved["Biohof"]["categories"]))
	assert.JSONEq(t, `{"1": {"name": {"replaced": "a", "manual": "b"}}}`, string(saved["Biohof"][ledger.KeyManualChanges]))

	suppliers, err := store.Suppliers()
	require.NoError(t, err)
	assert.Equal(t, []string{"Biohof", "Other"}, suppliers)
}

func TestStoreMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := ledger.NewStore(path).Load("Biohof")
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestStoreMalformedSegment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Biohof": {"last export": 3}}`), 0o644))

	_, err := ledger.NewStore(path).Load("Biohof")
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}
