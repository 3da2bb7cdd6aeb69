package excel

import (
	"strings"
	"testing"
	"time"

	"prism/domain/scc"

	"github.com/xuri/excelize/v2"
)

func writerFixtureReport() *scc.Report {
	return &scc.Report{
		Groups: []scc.CategoryGroup{
			{
				Name: "MFA_NOT_ENFORCED",
				Table: &scc.Table{
					Headers: []string{"Project Name", "finding.severity"},
					Rows: [][]string{
						{"proj-a", "HIGH"},
						{"proj-b", "LOW"},
					},
				},
			},
			{
				Name: "OPEN_FIREWALL",
				Table: &scc.Table{
					Headers: []string{"Project Name", "finding.severity"},
					Rows:    [][]string{{"proj-a", "MEDIUM"}},
				},
			},
		},
		Summary: []scc.SummaryRow{
			{Category: "MFA_NOT_ENFORCED", Count: 2},
			{Category: "OPEN_FIREWALL", Count: 1},
		},
	}
}

// TestWrite tests the workbook layout: one sheet per category plus Summary
func TestWrite(t *testing.T) {
	buf, err := NewWorkbookWriter().Write(writerFixtureReport())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("Generated workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	expected := []string{"MFA_NOT_ENFORCED", "OPEN_FIREWALL", "Summary"}
	if len(sheets) != len(expected) {
		t.Fatalf("Expected sheets %v, got %v", expected, sheets)
	}
	for _, name := range expected {
		if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
			t.Errorf("Missing sheet %s", name)
		}
	}

	// Category sheet carries header plus data rows
	rows, err := f.GetRows("MFA_NOT_ENFORCED")
	if err != nil {
		t.Fatalf("Failed to read category sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows with header, got %d", len(rows))
	}
	if rows[0][0] != "Project Name" || rows[1][1] != "HIGH" {
		t.Errorf("Sheet content wrong: %v", rows)
	}

	// Summary is sorted descending by count
	summary, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("Failed to read summary sheet: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("Expected 3 summary rows with header, got %d", len(summary))
	}
	if summary[1][0] != "MFA_NOT_ENFORCED" || summary[1][1] != "2" {
		t.Errorf("Summary row 1 wrong: %v", summary[1])
	}
}

// TestWrite_ColumnWidths tests the fitted width rule and its cap
func TestWrite_ColumnWidths(t *testing.T) {
	report := &scc.Report{
		Groups: []scc.CategoryGroup{
			{
				Name: "All Findings",
				Table: &scc.Table{
					Headers: []string{"finding.severity", "finding.description"},
					Rows: [][]string{
						{"HIGH", strings.Repeat("x", 200)},
					},
				},
			},
		},
		Summary: []scc.SummaryRow{{Category: "All Findings", Count: 1}},
	}

	buf, err := NewWorkbookWriter().Write(report)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("Generated workbook does not open: %v", err)
	}
	defer f.Close()

	// Header is the longest value in column A: 16 chars + 2 padding
	widthA, err := f.GetColWidth("All Findings", "A")
	if err != nil {
		t.Fatalf("Failed to read column width: %v", err)
	}
	if widthA != 18 {
		t.Errorf("Expected width 18, got %v", widthA)
	}

	// The 200-char description hits the cap
	widthB, err := f.GetColWidth("All Findings", "B")
	if err != nil {
		t.Fatalf("Failed to read column width: %v", err)
	}
	if widthB != 50 {
		t.Errorf("Expected capped width 50, got %v", widthB)
	}
}

// TestColumnIndexToLetter tests multi-letter conversion beyond index 26
func TestColumnIndexToLetter(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, test := range tests {
		result := columnIndexToLetter(test.index)
		if result != test.expected {
			t.Errorf("columnIndexToLetter(%d) = %s, expected %s", test.index, result, test.expected)
		}
	}
}

// TestUniqueSheetName tests collision suffixing under the length limit
func TestUniqueSheetName(t *testing.T) {
	used := make(map[string]bool)

	first := uniqueSheetName("Findings", used)
	second := uniqueSheetName("Findings", used)
	third := uniqueSheetName("Findings", used)

	if first != "Findings" {
		t.Errorf("Expected Findings, got %s", first)
	}
	if second != "Findings (2)" {
		t.Errorf("Expected Findings (2), got %s", second)
	}
	if third != "Findings (3)" {
		t.Errorf("Expected Findings (3), got %s", third)
	}

	long := strings.Repeat("y", 31)
	a := uniqueSheetName(long, used)
	b := uniqueSheetName(long, used)
	if len([]rune(a)) > 31 || len([]rune(b)) > 31 {
		t.Errorf("Suffixed names exceed 31 runes: %q, %q", a, b)
	}
	if a == b {
		t.Error("Expected distinct names for colliding sheets")
	}
}

// TestCleanedFilename tests the download name derivation
func TestCleanedFilename(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		original string
		expected string
	}{
		{"findings_export.csv", "findings_export_cleaned_20260314_092653.xlsx"},
		{"report.xlsx", "report_cleaned_20260314_092653.xlsx"},
		{"/tmp/uploads/scan.csv", "scan_cleaned_20260314_092653.xlsx"},
		{".csv", "export_cleaned_20260314_092653.xlsx"},
	}

	for _, test := range tests {
		result := CleanedFilename(test.original, ts)
		if result != test.expected {
			t.Errorf("CleanedFilename(%q) = %s, expected %s", test.original, result, test.expected)
		}
	}
}
