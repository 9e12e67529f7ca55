package dedupe_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/dedupe"
)

func article(order, name string, opts ...articles.Option) articles.Article {
	return articles.New(order, name, "1 Stk", decimal.NewFromInt(1), opts...)
}

func names(list []articles.Article) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Name
	}
	return out
}

func assertUnique(t *testing.T, list []articles.Article) {
	t.Helper()
	seen := make(map[string]string)
	for _, a := range list {
		key := dedupe.Key(a.Name)
		if prev, ok := seen[key]; ok {
			t.Errorf("names %q and %q collide", prev, a.Name)
		}
		seen[key] = a.Name
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, dedupe.Key("Rote Linsen"), dedupe.Key("rotelinsen"))
	assert.Equal(t, dedupe.Key("ROTE\tLINSEN "), dedupe.Key("rote linsen"))
	assert.Equal(t, dedupe.Key("ÄPFEL"), dedupe.Key("äpfel"))
	assert.NotEqual(t, dedupe.Key("Linsen rot"), dedupe.Key("Linsen grün"))
}

func TestResolveByUnit(t *testing.T) {
	list := []articles.Article{
		article("1", "Haferflocken", articles.WithOrigUnit("500g")),
		article("2", "haferflocken", articles.WithOrigUnit("1kg")),
		article("3", "Dinkel", articles.WithOrigUnit("1kg")),
	}

	renames := dedupe.Resolve(list)

	assert.Equal(t, []string{"Haferflocken (500g)", "haferflocken (1kg)", "Dinkel"}, names(list))
	require.Len(t, renames, 2)
	assert.Equal(t, dedupe.PassUnit, renames[0].Pass)
	assert.Equal(t, "Haferflocken", renames[0].From)
	assert.Equal(t, "1", renames[0].OrderNumber)
}

func TestResolveSkipsNonDiscriminatingUnit(t *testing.T) {
	list := []articles.Article{
		article("1", "Tofu", articles.WithOrigUnit("200g"), articles.WithManufacturer("Taifun")),
		article("2", "Tofu", articles.WithOrigUnit("200 G"), articles.WithManufacturer("Soyana")),
	}

	renames := dedupe.Resolve(list)

	assert.Equal(t, []string{"Tofu (von Taifun)", "Tofu (von Soyana)"}, names(list))
	for _, r := range renames {
		assert.Equal(t, dedupe.PassManufacturer, r.Pass)
	}
}

func TestResolveByOrigin(t *testing.T) {
	list := []articles.Article{
		article("1", "Äpfel", articles.WithManufacturer("Hof"), articles.WithOrigin("Italien")),
		article("2", "Äpfel", articles.WithManufacturer("Hof"), articles.WithOrigin("Deutschland")),
	}

	dedupe.Resolve(list)

	assert.Equal(t, []string{"Äpfel (aus Italien)", "Äpfel (aus Deutschland)"}, names(list))
}

func TestResolveNumbersWhenNothingDiscriminates(t *testing.T) {
	list := []articles.Article{
		article("1", "Brot"),
		article("2", "Kuchen"),
		article("3", "brot"),
		article("4", "B rot"),
	}

	renames := dedupe.Resolve(list)

	assert.Equal(t, []string{"Brot (1)", "Kuchen", "brot (2)", "B rot (3)"}, names(list))
	require.Len(t, renames, 3)
	for _, r := range renames {
		assert.Equal(t, dedupe.PassNumber, r.Pass)
	}
}

func TestResolvePassesSeeEarlierRenames(t *testing.T) {
	// The two kg articles still collide after the unit pass and are told
	// apart by manufacturer; the 500g article is left alone from then on.
	list := []articles.Article{
		article("1", "Reis", articles.WithOrigUnit("kg"), articles.WithManufacturer("A")),
		article("2", "Reis", articles.WithOrigUnit("kg"), articles.WithManufacturer("B")),
		article("3", "Reis", articles.WithOrigUnit("500g"), articles.WithManufacturer("A")),
	}

	dedupe.Resolve(list)

	assert.Equal(t, []string{"Reis (kg) (von A)", "Reis (kg) (von B)", "Reis (500g)"}, names(list))
	assertUnique(t, list)
}

func TestResolveEmptyAttributeNotUsed(t *testing.T) {
	list := []articles.Article{
		article("1", "Salz", articles.WithManufacturer("Bad Reichenhaller")),
		article("2", "Salz"),
	}

	dedupe.Resolve(list)

	assert.Equal(t, []string{"Salz (von Bad Reichenhaller)", "Salz"}, names(list))
}

func TestResolveMinimalDisruption(t *testing.T) {
	list := []articles.Article{
		article("1", "Milch", articles.WithOrigUnit("1l")),
		article("2", "Butter", articles.WithOrigUnit("250g")),
		article("3", "Sahne", articles.WithOrigUnit("200ml")),
	}

	renames := dedupe.Resolve(list)

	assert.Empty(t, renames)
	assert.Equal(t, []string{"Milch", "Butter", "Sahne"}, names(list))
}

func TestResolveUniquenessAndIdempotence(t *testing.T) {
	units := []string{"", "kg", "500g", "KG"}
	makers := []string{"", "Rapunzel", "Alnatura"}
	origins := []string{"", "DE", "IT"}

	var list []articles.Article
	n := 0
	for _, name := range []string{"Nudeln", "nudeln ", "Reis", "Linsen"} {
		for _, u := range units {
			for _, m := range makers {
				for _, o := range origins {
					n++
					list = append(list, article(fmt.Sprint(n), name,
						articles.WithOrigUnit(u), articles.WithManufacturer(m), articles.WithOrigin(o)))
				}
			}
		}
	}

	dedupe.Resolve(list)
	assertUnique(t, list)
	assert.Empty(t, dedupe.Duplicates(list))

	before := names(list)
	again := dedupe.Resolve(list)
	assert.Empty(t, again)
	assert.Equal(t, before, names(list))
}

func TestResolveNumberAvoidsExistingNames(t *testing.T) {
	list := []articles.Article{
		article("1", "Brot"),
		article("2", "Brot (1)"),
		article("3", "Brot"),
	}

	dedupe.Resolve(list)

	assert.Equal(t, []string{"Brot (3)", "Brot (1)", "Brot (2)"}, names(list))
	assertUnique(t, list)
}

func TestDuplicates(t *testing.T) {
	list := []articles.Article{
		article("1", "Brot"),
		article("2", "Kuchen"),
		article("3", "BROT"),
	}

	assert.Equal(t, [][]int{{0, 2}}, dedupe.Duplicates(list))
}

func TestPassString(t *testing.T) {
	assert.Equal(t, "unit", dedupe.PassUnit.String())
	assert.Equal(t, "number", dedupe.PassNumber.String())
	assert.Equal(t, "unknown", dedupe.Pass(0).String())
}
