package exports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/articles/csvcodec"
	"github.com/agentstation/foodsync/pkg/errors"
)

// XLSXExtension is the extension of spreadsheet copies.
const XLSXExtension = ".xlsx"

// SheetName is the worksheet holding the articles.
const SheetName = "Artikel"

// WriteXLSX writes list as a spreadsheet with the same columns as the CSV
// export, for review by humans.
func WriteXLSX(path string, list []articles.Article) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows := csvcodec.Encode(list)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// ReadXLSX reads articles from the first worksheet of a spreadsheet laid
// out like the CSV export, header row included.
func ReadXLSX(path string) ([]articles.Article, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx", path, "workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}

	// Trailing empty cells are dropped by excelize.
	for i := range rows {
		for len(rows[i]) < csvcodec.Columns {
			rows[i] = append(rows[i], "")
		}
	}

	list, err := csvcodec.Decode(rows)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return list, nil
}
