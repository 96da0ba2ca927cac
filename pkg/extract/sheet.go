package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetExtractor reads spreadsheets. XLSX workbooks are walked sheet by
// sheet, row by row, joining non-empty cell values with spaces; xls and
// csv fall back to the text-like reader.
type sheetExtractor struct{}

func (e *sheetExtractor) Extract(ctx context.Context, path string, opts Options) Result {
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return (&textExtractor{}).Extract(ctx, path, opts)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return failed(InputMalformed)
	}
	defer wb.Close()

	var parts []string
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				if cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) > 0 {
				parts = append(parts, strings.Join(cells, " "))
			}
		}
	}
	return ok(Normalize(strings.Join(parts, " ")))
}
