package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/ledger"
)

func TestLedgerSetGetDelete(t *testing.T) {
	l := ledger.New()
	assert.Equal(t, 0, l.Len())

	l.Set("1001", articles.FieldPriceNet, ledger.Change{Replaced: "10", Manual: "12"})
	l.Set("1001", articles.FieldName, ledger.Change{Replaced: "Hafer", Manual: "Haferflocken"})
	l.Set("2002", articles.FieldOrigin, ledger.Change{Replaced: "DE", Manual: "AT"})
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"1001", "2002"}, l.OrderNumbers())

	c, ok := l.Get("1001", articles.FieldPriceNet)
	require.True(t, ok)
	assert.Equal(t, ledger.Value("12"), c.Manual)

	_, ok = l.Get("1001", articles.FieldOrigin)
	assert.False(t, ok)
	_, ok = l.Get("9999", articles.FieldName)
	assert.False(t, ok)

	assert.True(t, l.Delete("2002", articles.FieldOrigin))
	assert.False(t, l.Delete("2002", articles.FieldOrigin))
	assert.Equal(t, []string{"1001"}, l.OrderNumbers())

	assert.Equal(t, 2, l.DeleteArticle("1001"))
	assert.Equal(t, 0, l.Len())
}

func TestLedgerEntriesSorted(t *testing.T) {
	l := ledger.New()
	l.Set("b", articles.FieldUnit, ledger.Change{Replaced: "1 kg", Manual: "1000 g"})
	l.Set("a", articles.FieldPriceNet, ledger.Change{Replaced: "1", Manual: "2"})
	l.Set("a", articles.FieldName, ledger.Change{Replaced: "x", Manual: "y"})

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].OrderNumber)
	assert.Equal(t, articles.FieldName, entries[0].Field)
	assert.Equal(t, articles.FieldPriceNet, entries[1].Field)
	assert.Equal(t, "b", entries[2].OrderNumber)
}

func TestLedgerCloneIsIndependent(t *testing.T) {
	l := ledger.New()
	l.Set("1", articles.FieldName, ledger.Change{Replaced: "a", Manual: "b"})

	clone := l.Clone()
	clone.Set("1", articles.FieldNote, ledger.Change{Replaced: "", Manual: "bio"})
	clone.Delete("1", articles.FieldName)

	assert.Equal(t, 1, l.Len())
	_, ok := l.Get("1", articles.FieldName)
	assert.True(t, ok)
}

func TestLedgerJSONRoundTrip(t *testing.T) {
	l := ledger.New()
	l.Set("1001", articles.FieldPriceNet, ledger.Change{Replaced: "10", Manual: "12"})
	l.Set("1001", articles.FieldCategory, ledger.Change{Replaced: "Milch", Manual: "Dairy"})

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1001": {"price_net": {"replaced": "10", "manual": "12"}, "category": "Dairy"}}`, string(data))

	loaded := ledger.New()
	require.NoError(t, json.Unmarshal(data, loaded))

	c, ok := loaded.Get("1001", articles.FieldPriceNet)
	require.True(t, ok)
	assert.Equal(t, ledger.Change{Replaced: "10", Manual: "12"}, c)

	// The category form keeps only the manual value.
	c, ok = loaded.Get("1001", articles.FieldCategory)
	require.True(t, ok)
	assert.Equal(t, ledger.Value("Dairy"), c.Manual)
}

func TestLedgerUnmarshalNumbers(t *testing.T) {
	l := ledger.New()
	err := json.Unmarshal([]byte(`{"7": {"price_net": {"replaced": 10.5, "manual": 12}}}`), l)
	require.NoError(t, err)

	c, ok := l.Get("7", articles.FieldPriceNet)
	require.True(t, ok)
	assert.Equal(t, ledger.Value("10.5"), c.Replaced)
	assert.Equal(t, ledger.Value("12"), c.Manual)
}

func TestLedgerUnmarshalCategoryObject(t *testing.T) {
	l := ledger.New()
	err := json.Unmarshal([]byte(`{"7": {"category": {"replaced": "Milch", "manual": "Dairy"}}}`), l)
	require.NoError(t, err)

	c, ok := l.Get("7", articles.FieldCategory)
	require.True(t, ok)
	assert.Equal(t, ledger.Change{Replaced: "Milch", Manual: "Dairy"}, c)
}

func TestLedgerUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an object", `[]`},
		{"unknown field", `{"1": {"colour": {"replaced": "a", "manual": "b"}}}`},
		{"bad change", `{"1": {"name": ["a"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.doc), ledger.New())
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), "got %v", err)
		})
	}
}
