// Package csvcodec maps articles to and from the fixed 14-column,
// semicolon-delimited row format that the Foodsoft article upload accepts
// and that its article download produces.
package csvcodec

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Delimiter separates columns in every file handled by this package.
const Delimiter = ';'

// Columns is the number of columns in a row.
const Columns = 14

// UnavailableMarker is written to the first column of unavailable articles.
const UnavailableMarker = "x"

// Column positions.
const (
	ColAvailability = iota
	ColOrderNumber
	ColName
	ColNote
	ColManufacturer
	ColOrigin
	ColUnit
	ColPriceNet
	ColVAT
	ColDeposit
	ColUnitQuantity
	ColReserved1
	ColReserved2
	ColCategory
)

// Header is the header row written before the data rows.
func Header() []string {
	return []string{"avail.", "Order number", "Name", "Note", "Manufacturer", "Origin", "Unit",
		"Price (net)", "VAT", "Deposit", "Unit quantity", "", "", "Category"}
}

// EncodeRow converts an article into a row. Ignore, OrigUnit and Scratch
// are not part of the row.
func EncodeRow(a articles.Article) []string {
	row := make([]string, Columns)
	if !a.Available {
		row[ColAvailability] = UnavailableMarker
	}
	row[ColOrderNumber] = a.OrderNumber
	row[ColName] = a.Name
	row[ColNote] = a.Note
	row[ColManufacturer] = a.Manufacturer
	row[ColOrigin] = a.Origin
	row[ColUnit] = a.Unit
	row[ColPriceNet] = articles.FormatDecimal(a.PriceNet)
	row[ColVAT] = articles.FormatDecimal(a.VAT)
	row[ColDeposit] = articles.FormatDecimal(a.Deposit)
	row[ColUnitQuantity] = articles.FormatDecimal(a.UnitQuantity)
	row[ColCategory] = a.Category
	return row
}

// DecodeRow converts a row into an article. Rows with more than Columns
// cells are accepted and the extra cells ignored.
func DecodeRow(row []string) (articles.Article, error) {
	if len(row) < Columns {
		return articles.Article{}, errors.NewValidationError("row", row,
			fmt.Sprintf("expected %d columns, got %d", Columns, len(row)))
	}

	a := articles.Article{
		Available:    row[ColAvailability] != UnavailableMarker,
		OrderNumber:  row[ColOrderNumber],
		Name:         row[ColName],
		Note:         row[ColNote],
		Manufacturer: row[ColManufacturer],
		Origin:       row[ColOrigin],
		Unit:         row[ColUnit],
		Category:     row[ColCategory],
	}

	decimals := []struct {
		field articles.Field
		col   int
	}{
		{articles.FieldPriceNet, ColPriceNet},
		{articles.FieldVAT, ColVAT},
		{articles.FieldDeposit, ColDeposit},
		{articles.FieldUnitQuantity, ColUnitQuantity},
	}
	for _, d := range decimals {
		if err := d.field.Set(&a, row[d.col]); err != nil {
			return articles.Article{}, err
		}
	}

	return a, nil
}

// Decode converts rows into articles. The first row is always treated as
// the header and discarded.
func Decode(rows [][]string) ([]articles.Article, error) {
	if len(rows) <= 1 {
		return []articles.Article{}, nil
	}
	list := make([]articles.Article, 0, len(rows)-1)
	for i, row := range rows[1:] {
		a, err := DecodeRow(row)
		if err != nil {
			return nil, &errors.ParseError{Format: "csv", Line: i + 2, Message: err.Error(), Err: err}
		}
		list = append(list, a)
	}
	return list, nil
}

// Encode converts articles into rows, header first.
func Encode(list []articles.Article) [][]string {
	rows := make([][]string, 0, len(list)+1)
	rows = append(rows, Header())
	for _, a := range list {
		rows = append(rows, EncodeRow(a))
	}
	return rows
}

// Read parses a semicolon-delimited CSV stream.
func Read(r io.Reader) ([]articles.Article, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}
	return Decode(rows)
}

// Write writes the header and one row per article.
func Write(w io.Writer, list []articles.Article) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter
	if err := writer.WriteAll(Encode(list)); err != nil {
		return errors.WrapIO("write", "csv", err)
	}
	return nil
}
