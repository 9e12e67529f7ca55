package validate_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/notify"
	"github.com/agentstation/foodsync/pkg/validate"
)

func sample() articles.Article {
	return articles.New("42", "Apfelsaft", "1 l", decimal.NewFromInt(2))
}

func TestStringTruncatesNote(t *testing.T) {
	a := sample()
	note := strings.Repeat("a", 300)

	got, notes := validate.String(note, validate.LabelNote, &a)
	assert.Equal(t, 255, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", 252), strings.TrimSuffix(got, "..."))

	require.Len(t, notes, 1)
	assert.Equal(t, notify.KindTruncated, notes[0].Kind)
	assert.Equal(t, "Overlong article note (300 characters) of article #42 (Apfelsaft) registered, shortened to 255 characters.", notes[0].Message)
}

func TestStringLeavesNameAndUnitLength(t *testing.T) {
	a := sample()
	long := strings.Repeat("n", 300)

	for _, label := range []string{validate.LabelName, validate.LabelUnit} {
		got, notes := validate.String(long, label, &a)
		assert.Equal(t, long, got, label)
		assert.Empty(t, notes, label)
	}
}

func TestStringCountsRunes(t *testing.T) {
	a := sample()
	value := strings.Repeat("ä", 255)

	got, notes := validate.String(value, validate.LabelOrigin, &a)
	assert.Equal(t, value, got)
	assert.Empty(t, notes)
}

func TestStringReplacesDelimiter(t *testing.T) {
	a := sample()
	for _, label := range []string{validate.LabelName, validate.LabelNote, validate.LabelUnit} {
		got, _ := validate.String("Bio; vegan; glutenfrei", label, &a)
		assert.Equal(t, "Bio, vegan, glutenfrei", got, label)
	}
}

func TestArticle(t *testing.T) {
	a := sample()
	a.Name = "Saft; naturtrüb"
	a.Manufacturer = strings.Repeat("m", 256)
	a.Origin = "DE"

	notes := validate.Article(&a)
	assert.Equal(t, "Saft, naturtrüb", a.Name)
	assert.Equal(t, 255, utf8.RuneCountInString(a.Manufacturer))
	assert.Equal(t, "DE", a.Origin)

	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Message, "Overlong article manufacturer (256 characters)")
	assert.Contains(t, notes[0].Message, "(Saft; naturtrüb)")
}

func TestArticleOrigUnit(t *testing.T) {
	a := sample()
	a.OrigUnit = "6;1 l"

	assert.Empty(t, validate.Article(&a))
	assert.Equal(t, "6,1 l", a.OrigUnit)
}

func TestArticles(t *testing.T) {
	list := []articles.Article{sample(), sample()}
	list[1].Note = strings.Repeat("x", 400)

	notes := validate.Articles(list)
	assert.Len(t, notes, 1)
	assert.Len(t, list[1].Note, 255)
}

type settings struct {
	URL        string `validate:"required,url"`
	SupplierID int    `validate:"gt=0"`
}

func TestConfig(t *testing.T) {
	require.NoError(t, validate.Config("run", settings{URL: "https://app.foodcoops.net/demo/", SupplierID: 3}))

	err := validate.Config("run", settings{URL: "not a url"})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	fields := validate.Fields(err)
	assert.Equal(t, "url", fields["URL"])
	assert.Equal(t, "gt", fields["SupplierID"])
}
