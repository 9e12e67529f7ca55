package csvcodec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/articles/csvcodec"
	"github.com/agentstation/foodsync/pkg/errors"
)

func sampleArticle() articles.Article {
	return articles.New("A-100", "Bergkäse", "200 g", decimal.RequireFromString("3.85"),
		articles.WithNote("mind. 6 Monate gereift"),
		articles.WithManufacturer("Sennerei Hochland"),
		articles.WithOrigin("AT"),
		articles.WithVAT(decimal.NewFromInt(7)),
		articles.WithDeposit(decimal.RequireFromString("0.08")),
		articles.WithUnitQuantity(decimal.NewFromInt(10)),
		articles.WithCategory("Käse"),
		articles.WithAvailable(false),
		articles.WithOrigUnit("200g"),
		articles.WithIgnore(true),
	)
}

func TestEncodeRow(t *testing.T) {
	row := csvcodec.EncodeRow(sampleArticle())

	require.Len(t, row, csvcodec.Columns)
	assert.Equal(t, []string{"x", "A-100", "Bergkäse", "mind. 6 Monate gereift", "Sennerei Hochland",
		"AT", "200 g", "3.85", "7", "0.08", "10", "", "", "Käse"}, row)
}

func TestEncodeRowAvailable(t *testing.T) {
	a := sampleArticle()
	a.Available = true
	assert.Equal(t, "", csvcodec.EncodeRow(a)[csvcodec.ColAvailability])
}

func TestRoundTrip(t *testing.T) {
	original := sampleArticle()
	rows := csvcodec.Encode([]articles.Article{original})
	require.Len(t, rows, 2)

	decoded, err := csvcodec.Decode(rows)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	assert.Equal(t, rows[1], csvcodec.EncodeRow(decoded[0]))

	got := decoded[0]
	assert.False(t, got.Ignore)
	assert.Empty(t, got.OrigUnit)
	assert.Empty(t, got.Scratch)
	assert.True(t, got.PriceNet.Equal(original.PriceNet))
}

func TestDecodeSkipsHeader(t *testing.T) {
	decoded, err := csvcodec.Decode([][]string{csvcodec.Header()})
	require.NoError(t, err)
	assert.Empty(t, decoded)

	decoded, err = csvcodec.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeRowErrors(t *testing.T) {
	_, err := csvcodec.DecodeRow([]string{"", "1", "Brot"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	row := csvcodec.EncodeRow(sampleArticle())
	row[csvcodec.ColPriceNet] = "teuer"
	_, err = csvcodec.Decode([][]string{csvcodec.Header(), row})
	require.Error(t, err)

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestDecodeRowDecimalComma(t *testing.T) {
	row := csvcodec.EncodeRow(sampleArticle())
	row[csvcodec.ColPriceNet] = "3,85"
	row = append(row, "extra")

	a, err := csvcodec.DecodeRow(row)
	require.NoError(t, err)
	assert.Equal(t, "3.85", a.PriceNet.String())
}

func TestReadWrite(t *testing.T) {
	list := []articles.Article{
		sampleArticle(),
		articles.New("B-7", "Dinkelmehl; Type 630", "1 kg", decimal.RequireFromString("1.99")),
	}

	var buf bytes.Buffer
	require.NoError(t, csvcodec.Write(&buf, list))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "avail.;Order number;Name"))

	read, err := csvcodec.Read(&buf)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "Dinkelmehl; Type 630", read[1].Name)
	assert.True(t, read[1].Available)
}
