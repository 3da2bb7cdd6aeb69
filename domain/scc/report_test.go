package scc

import (
	"errors"
	"testing"
)

// TestValidate tests the structural gate ahead of the pipeline
func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		table       *Table
		expectedErr error
	}{
		{
			"empty file",
			NewTable([]string{"finding.category", "finding.severity"}, nil),
			ErrEmptyFile,
		},
		{
			"single column",
			NewTable([]string{"finding.category"}, [][]string{{"x"}}),
			ErrTooFewColumns,
		},
		{
			"valid export",
			NewTable([]string{"finding.category", "finding.severity"}, [][]string{{"a", "b"}}),
			nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Validate(test.table)
			if test.expectedErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, test.expectedErr) {
				t.Errorf("Expected %v, got %v", test.expectedErr, err)
			}
			if !IsValidationError(err) {
				t.Errorf("Expected %v to be a validation error", err)
			}
		})
	}
}

// TestValidate_NonSCCWarning tests the soft warning for files without
// finding./resource. columns
func TestValidate_NonSCCWarning(t *testing.T) {
	table := NewTable([]string{"alpha", "beta"}, [][]string{{"1", "2"}})
	warnings, err := Validate(table)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0] != WarningNotSCCExport {
		t.Errorf("Expected the non-SCC warning, got %v", warnings)
	}

	scc := NewTable([]string{"Finding.Category", "Resource.Name"}, [][]string{{"1", "2"}})
	warnings, err = Validate(scc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings for an SCC-shaped file, got %v", warnings)
	}
}

// TestBuildReport tests the full pipeline on a realistic small export
func TestBuildReport(t *testing.T) {
	raw := NewTable(
		[]string{"Junk", "Finding.Category", "Resource.Project_Display_Name", "Finding.Severity"},
		[][]string{
			{"x", "MFA_NOT_ENFORCED", "proj-a", "HIGH"},
			{"x", "OPEN_FIREWALL", "proj-a", "MEDIUM"},
			{"x", "MFA_NOT_ENFORCED", "proj-b", "LOW"},
		},
	)

	report, err := BuildReport(raw, nil, DefaultReferenceColumns)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Cleaned columns follow reference order: project name before category
	// and severity, junk dropped
	if report.Stats.OriginalColumns != 4 {
		t.Errorf("Expected 4 original columns, got %d", report.Stats.OriginalColumns)
	}
	if report.Stats.CleanedColumns != 3 {
		t.Errorf("Expected 3 cleaned columns, got %d", report.Stats.CleanedColumns)
	}
	if report.Stats.OriginalRows != 3 {
		t.Errorf("Expected 3 original rows, got %d", report.Stats.OriginalRows)
	}
	if report.Stats.Categories != 2 {
		t.Errorf("Expected 2 categories, got %d", report.Stats.Categories)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(report.Groups))
	}
	if report.Groups[0].Name != "MFA_NOT_ENFORCED" || report.Groups[1].Name != "OPEN_FIREWALL" {
		t.Errorf("Group order wrong: %s, %s", report.Groups[0].Name, report.Groups[1].Name)
	}

	headers := report.Groups[0].Table.Headers
	if headers[0] != ProjectColumnDisplay {
		t.Errorf("Expected project column first, got %v", headers)
	}

	// Row conservation across groups
	total := 0
	for _, g := range report.Groups {
		total += g.Table.RowCount()
	}
	if total != raw.RowCount() {
		t.Errorf("Rows not conserved: %d vs %d", total, raw.RowCount())
	}

	// Summary sorted descending
	if len(report.Summary) != 2 {
		t.Fatalf("Expected 2 summary rows, got %d", len(report.Summary))
	}
	if report.Summary[0] != (SummaryRow{Category: "MFA_NOT_ENFORCED", Count: 2}) {
		t.Errorf("Summary row 0 wrong: %+v", report.Summary[0])
	}
	if report.Summary[1] != (SummaryRow{Category: "OPEN_FIREWALL", Count: 1}) {
		t.Errorf("Summary row 1 wrong: %+v", report.Summary[1])
	}
}

// TestBuildReport_WithRules tests that per-category rules narrow sheets
// inside the full pipeline
func TestBuildReport_WithRules(t *testing.T) {
	raw := NewTable(
		[]string{"Finding.Category", "Finding.Severity", "Finding.Event_Time"},
		[][]string{
			{"MFA_NOT_ENFORCED", "HIGH", "2026-01-01"},
			{"OPEN_FIREWALL", "LOW", "2026-01-02"},
		},
	)
	rules := []Rule{
		{Category: "MFA_NOT_ENFORCED", ColumnsToKeep: []string{"finding.severity"}},
	}

	report, err := BuildReport(raw, rules, DefaultReferenceColumns)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Groups[0].Table.ColumnCount() != 1 {
		t.Errorf("Expected ruled group narrowed to 1 column, got %d", report.Groups[0].Table.ColumnCount())
	}
	if report.Groups[1].Table.ColumnCount() != 3 {
		t.Errorf("Expected unruled group to keep 3 columns, got %d", report.Groups[1].Table.ColumnCount())
	}
}

// TestBuildReport_ValidationFailures tests that bad tables never reach the
// matcher
func TestBuildReport_ValidationFailures(t *testing.T) {
	empty := NewTable([]string{"finding.category", "finding.severity"}, nil)
	if _, err := BuildReport(empty, nil, DefaultReferenceColumns); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}

	narrow := NewTable([]string{"finding.category"}, [][]string{{"x"}})
	if _, err := BuildReport(narrow, nil, DefaultReferenceColumns); !errors.Is(err, ErrTooFewColumns) {
		t.Errorf("Expected ErrTooFewColumns, got %v", err)
	}
}

// TestBuildReport_NoMatchAborts tests that a file with no reference columns
// and no project column produces no report at all
func TestBuildReport_NoMatchAborts(t *testing.T) {
	raw := NewTable(
		[]string{"alpha", "beta"},
		[][]string{{"1", "2"}},
	)
	report, err := BuildReport(raw, nil, DefaultReferenceColumns)
	if !errors.Is(err, ErrNoMatchingColumns) {
		t.Errorf("Expected ErrNoMatchingColumns, got %v", err)
	}
	if report != nil {
		t.Error("Expected no partial report on abort")
	}
}

// TestBuildReport_FallbackWarning tests that the project-column fallback
// surfaces in the stats warnings
func TestBuildReport_FallbackWarning(t *testing.T) {
	raw := NewTable(
		[]string{"Project Display Name", "Whatever"},
		[][]string{
			{"proj-a", "1"},
			{"proj-b", "2"},
		},
	)

	report, err := BuildReport(raw, nil, DefaultReferenceColumns)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !report.Projection.Fallback {
		t.Fatal("Expected fallback projection")
	}
	if report.Stats.CleanedColumns != 1 {
		t.Errorf("Expected 1 cleaned column, got %d", report.Stats.CleanedColumns)
	}
	if len(report.Stats.Warnings) < 2 {
		t.Errorf("Expected non-SCC and fallback warnings, got %v", report.Stats.Warnings)
	}
}
