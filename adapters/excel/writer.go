package excel

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"prism/domain/scc"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type served with generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	minColumnPadding = 2
	maxColumnWidth   = 50.0
)

// WorkbookWriter renders a cleaning report as a multi-sheet workbook: one
// sheet per category plus a summary sheet, all built in memory.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a new workbook writer
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write renders the report into an in-memory workbook buffer. Nothing
// touches disk; the caller streams the buffer to the client.
func (w *WorkbookWriter) Write(report *scc.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	used := make(map[string]bool)
	firstSheet := ""

	for _, group := range report.Groups {
		name := uniqueSheetName(scc.CleanSheetName(group.Name), used)
		if firstSheet == "" {
			firstSheet = name
		}
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, group.Table.Headers, group.Table.Rows); err != nil {
			return nil, err
		}
	}

	summaryName := uniqueSheetName(scc.SummarySheetName, used)
	if _, err := f.NewSheet(summaryName); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summaryRows := make([][]string, 0, len(report.Summary))
	for _, row := range report.Summary {
		summaryRows = append(summaryRows, []string{row.Category, fmt.Sprintf("%d", row.Count)})
	}
	if err := writeSheet(f, summaryName, []string{"Category", "Finding Count"}, summaryRows); err != nil {
		return nil, err
	}

	// Drop the default sheet unless a category claimed its name
	if !used["Sheet1"] {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}
	if firstSheet == "" {
		firstSheet = summaryName
	}
	if idx, err := f.GetSheetIndex(firstSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

// writeSheet fills one sheet with a header row, data rows and fitted
// column widths
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r := 0; r < len(rows); r++ {
		rowIdx := r + 2
		for c, v := range rows[r] {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return fitColumnWidths(f, sheet, headers, rows)
}

// fitColumnWidths sizes each column to its longest cell plus padding,
// capped so one huge description cell can't blow out the layout
func fitColumnWidths(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for i, h := range headers {
		longest := utf8.RuneCountInString(h)
		for _, row := range rows {
			if i < len(row) {
				if l := utf8.RuneCountInString(row[i]); l > longest {
					longest = l
				}
			}
		}

		width := float64(longest + minColumnPadding)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		letter := columnIndexToLetter(i)
		if err := f.SetColWidth(sheet, letter, letter, width); err != nil {
			return err
		}
	}
	return nil
}

// columnIndexToLetter converts 0-based column index to Excel column letter (A, B, ..., Z, AA, AB, ...)
func columnIndexToLetter(colIdx int) string {
	result := ""
	colIdx++ // Excel is 1-indexed internally
	for colIdx > 0 {
		colIdx--
		result = string(rune('A'+(colIdx%26))) + result
		colIdx /= 26
	}
	return result
}

// uniqueSheetName reserves a sheet name, suffixing numerically when two
// categories clean to the same name. Stays within the 31-character limit.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := name
		if max := 31 - len(suffix); utf8.RuneCountInString(base) > max {
			base = string([]rune(base)[:max])
		}
		candidate = base + suffix
	}
	used[candidate] = true
	return candidate
}

// CleanedFilename derives the download filename from the uploaded one:
// the original base plus a _cleaned_ timestamp marker.
func CleanedFilename(original string, ts time.Time) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" {
		base = "export"
	}
	return fmt.Sprintf("%s_cleaned_%s.xlsx", base, ts.Format("20060102_150405"))
}
