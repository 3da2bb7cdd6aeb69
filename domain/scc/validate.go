package scc

import (
	"strings"
)

// WarningNotSCCExport flags an upload that is missing the usual finding./
// resource. column prefixes. The file is still processed.
const WarningNotSCCExport = "this file may not be a standard SCC export, but we'll try to process it"

// Validate gates a parsed table before the pipeline runs. Structural
// problems (no rows, fewer than two columns) are hard rejections; a missing
// finding./resource. column prefix only produces a warning, since real
// exports occasionally rename everything.
func Validate(t *Table) ([]string, error) {
	if t.RowCount() == 0 {
		return nil, ErrEmptyFile
	}
	if t.ColumnCount() < 2 {
		return nil, ErrTooFewColumns
	}

	var warnings []string
	if !looksLikeSCCExport(t.Headers) {
		warnings = append(warnings, WarningNotSCCExport)
	}
	return warnings, nil
}

func looksLikeSCCExport(headers []string) bool {
	for _, h := range headers {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "finding.") || strings.Contains(lower, "resource.") {
			return true
		}
	}
	return false
}
