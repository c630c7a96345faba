package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/bso/internal/model"
)

const sheetName = "Report"

// XLSXContentType is the media type of WriteXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var xlsxHeadings = []string{"Category", "Series", "Start", "End", "Count"}

// WriteXLSX writes r as a spreadsheet with one row per range, ordered by
// category and then series.
func WriteXLSX(w io.Writer, title string, r model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	for i, h := range xlsxHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing heading: %w", err)
		}
	}

	row := 3
	for _, name := range Categories {
		ranges := byCategory(r, name)
		series := make([]string, 0, len(ranges))
		for s := range ranges {
			series = append(series, s)
		}
		sort.Strings(series)

		for _, s := range series {
			for _, rg := range ranges[s] {
				values := []any{name, s, rg.Start, rg.End, rg.End - rg.Start + 1}
				cell, _ := excelize.CoordinatesToCellName(1, row)
				if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
					return fmt.Errorf("writing row %d: %w", row, err)
				}
				row++
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

func byCategory(r model.Report, name string) model.SeriesRanges {
	switch name {
	case CategoryUse:
		return r.Use
	case CategoryNew:
		return r.New
	case CategorySpoiled:
		return r.Spoiled
	case CategoryLost:
		return r.Lost
	case CategoryCleanAtBegin:
		return r.CleanAtBegin
	case CategoryCleanAtEnd:
		return r.CleanAtEnd
	}
	return nil
}
