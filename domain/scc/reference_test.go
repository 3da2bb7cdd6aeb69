package scc

import (
	"errors"
	"testing"
)

// TestMatchReference_ReferenceOrder tests that matched columns come back in
// reference-list order regardless of input order
func TestMatchReference_ReferenceOrder(t *testing.T) {
	headers := []string{"finding.severity", "resource.name", "finding.category", "resource.type"}
	reference := []string{"resource.name", "resource.type", "finding.category", "finding.severity"}

	proj, err := MatchReference(headers, reference)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"resource.name", "resource.type", "finding.category", "finding.severity"}
	if len(proj.Columns) != len(expected) {
		t.Fatalf("Expected %d matches, got %d", len(expected), len(proj.Columns))
	}
	for i, ref := range expected {
		if proj.Columns[i].Reference != ref {
			t.Errorf("Match %d: expected %s, got %s", i, ref, proj.Columns[i].Reference)
		}
	}
	if proj.Fallback {
		t.Error("Expected a normal match, not a fallback")
	}
}

// TestMatchReference_CaseAndWhitespace tests case-insensitive, trimmed lookup
func TestMatchReference_CaseAndWhitespace(t *testing.T) {
	headers := []string{" Finding.Severity ", "RESOURCE.NAME", "\tfinding.Category\t"}
	reference := []string{"resource.name", "finding.category", "finding.severity"}

	proj, err := MatchReference(headers, reference)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(proj.Columns) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(proj.Columns))
	}

	// Source labels keep their original form
	if proj.Columns[2].SourceLabel != " Finding.Severity " {
		t.Errorf("Expected original label preserved, got %q", proj.Columns[2].SourceLabel)
	}
	if proj.Columns[2].SourceIndex != 0 {
		t.Errorf("Expected source index 0, got %d", proj.Columns[2].SourceIndex)
	}
}

// TestMatchReference_SubsetScenario tests the two-of-many subset case:
// junk columns are dropped, matches keep reference order
func TestMatchReference_SubsetScenario(t *testing.T) {
	headers := []string{"Finding.Severity", "Resource.Display_Name", "Random Junk"}
	reference := []string{"resource.display_name", "finding.severity"}

	proj, err := MatchReference(headers, reference)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(proj.Columns) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(proj.Columns))
	}
	if proj.Columns[0].Reference != "resource.display_name" {
		t.Errorf("Expected resource.display_name first, got %s", proj.Columns[0].Reference)
	}
	if proj.Columns[1].Reference != "finding.severity" {
		t.Errorf("Expected finding.severity second, got %s", proj.Columns[1].Reference)
	}
}

// TestMatchReference_MissingRecorded tests that unmatched reference names are
// reported as missing
func TestMatchReference_MissingRecorded(t *testing.T) {
	headers := []string{"finding.severity"}
	reference := []string{"resource.name", "finding.severity", "finding.category"}

	proj, err := MatchReference(headers, reference)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(proj.Missing) != 2 {
		t.Fatalf("Expected 2 missing columns, got %d", len(proj.Missing))
	}
	if proj.Missing[0] != "resource.name" || proj.Missing[1] != "finding.category" {
		t.Errorf("Missing columns wrong: %v", proj.Missing)
	}
}

// TestMatchReference_ProjectFallback tests the zero-match fallback that keeps
// a lone project display name column
func TestMatchReference_ProjectFallback(t *testing.T) {
	headers := []string{"Some Column", "GCP Project Display Name", "Other"}
	reference := []string{"resource.name", "finding.severity"}

	proj, err := MatchReference(headers, reference)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !proj.Fallback {
		t.Fatal("Expected fallback projection")
	}
	if len(proj.Columns) != 1 {
		t.Fatalf("Expected 1 fallback column, got %d", len(proj.Columns))
	}
	if proj.Columns[0].SourceIndex != 1 {
		t.Errorf("Expected fallback to pick column 1, got %d", proj.Columns[0].SourceIndex)
	}
	if proj.Columns[0].DisplayHeader() != ProjectColumnDisplay {
		t.Errorf("Expected display header %q, got %q", ProjectColumnDisplay, proj.Columns[0].DisplayHeader())
	}
}

// TestMatchReference_NoMatches tests the abort path when nothing matches and
// no project column exists
func TestMatchReference_NoMatches(t *testing.T) {
	headers := []string{"alpha", "beta", "gamma"}
	reference := []string{"resource.name", "finding.severity"}

	_, err := MatchReference(headers, reference)
	if err == nil {
		t.Fatal("Expected an error, got none")
	}
	if !errors.Is(err, ErrNoMatchingColumns) {
		t.Errorf("Expected ErrNoMatchingColumns, got %v", err)
	}
}

// TestCleanTable tests projection onto matched columns with display headers
func TestCleanTable(t *testing.T) {
	raw := NewTable(
		[]string{"Random Junk", "Resource.Project_Display_Name", "Finding.Severity"},
		[][]string{
			{"x", "proj-a", "HIGH"},
			{"y", "proj-b", "LOW"},
		},
	)
	reference := []string{"resource.project_display_name", "finding.severity"}

	proj, err := MatchReference(raw.Headers, reference)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cleaned := CleanTable(raw, proj)
	if cleaned.ColumnCount() != 2 {
		t.Fatalf("Expected 2 columns, got %d", cleaned.ColumnCount())
	}
	if cleaned.Headers[0] != ProjectColumnDisplay {
		t.Errorf("Expected renamed project header, got %q", cleaned.Headers[0])
	}
	if cleaned.Headers[1] != "finding.severity" {
		t.Errorf("Expected finding.severity header, got %q", cleaned.Headers[1])
	}
	if cleaned.RowCount() != 2 {
		t.Fatalf("Expected 2 rows, got %d", cleaned.RowCount())
	}
	if cleaned.Cell(0, 0) != "proj-a" || cleaned.Cell(0, 1) != "HIGH" {
		t.Errorf("Row 0 wrong: %v", cleaned.Rows[0])
	}
	if cleaned.Cell(1, 0) != "proj-b" || cleaned.Cell(1, 1) != "LOW" {
		t.Errorf("Row 1 wrong: %v", cleaned.Rows[1])
	}
}

// TestDefaultReferenceColumns_Shape sanity-checks the canonical list
func TestDefaultReferenceColumns_Shape(t *testing.T) {
	if len(DefaultReferenceColumns) < 50 {
		t.Errorf("Reference list suspiciously short: %d entries", len(DefaultReferenceColumns))
	}

	seen := make(map[string]bool, len(DefaultReferenceColumns))
	for _, name := range DefaultReferenceColumns {
		if seen[name] {
			t.Errorf("Duplicate reference column: %s", name)
		}
		seen[name] = true
		if Normalize(name) == "" {
			t.Errorf("Reference column normalizes to empty: %q", name)
		}
	}

	if !seen[projectColumnReference] {
		t.Errorf("Reference list missing %s", projectColumnReference)
	}
}
