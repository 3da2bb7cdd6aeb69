package scc

import (
	"regexp"
	"sort"
)

// DefaultCategory labels every row when no category column exists
const DefaultCategory = "All Findings"

// SummarySheetName is the name of the per-category count sheet
const SummarySheetName = "Summary"

// categoryAliases are probed in priority order against normalized headers
var categoryAliases = []string{
	"category",
	"finding_category",
	"type",
	"finding_type",
	"class",
}

// DetectCategoryColumn returns the index of the first header whose
// normalized form matches a category alias, probing aliases in priority
// order. Returns -1 when no alias matches.
func DetectCategoryColumn(headers []string) int {
	normalized := NormalizeHeaders(headers)
	for _, alias := range categoryAliases {
		for i, h := range normalized {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

// CategoryGroup is one output sheet: the rows of a single category
type CategoryGroup struct {
	Name  string // raw category value
	Table *Table
}

// SplitByCategory partitions the cleaned rows by the category value taken
// from the raw table (the two are row-aligned). Categories keep first-seen
// order. A negative column index yields a single DefaultCategory group.
func SplitByCategory(cleaned *Table, raw *Table, categoryCol int) []CategoryGroup {
	if categoryCol < 0 {
		return []CategoryGroup{{
			Name:  DefaultCategory,
			Table: &Table{Headers: cleaned.Headers, Rows: cleaned.Rows},
		}}
	}

	var order []string
	byName := make(map[string]*Table)
	for i, row := range cleaned.Rows {
		category := raw.Cell(i, categoryCol)
		group, seen := byName[category]
		if !seen {
			group = &Table{Headers: cleaned.Headers}
			byName[category] = group
			order = append(order, category)
		}
		group.Rows = append(group.Rows, row)
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, CategoryGroup{Name: name, Table: byName[name]})
	}
	return groups
}

// SummaryRow is one line of the Summary sheet
type SummaryRow struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summarize counts each group's rows and sorts descending by count,
// keeping the incoming order for ties.
func Summarize(groups []CategoryGroup) []SummaryRow {
	summary := make([]SummaryRow, 0, len(groups))
	for _, g := range groups {
		summary = append(summary, SummaryRow{Category: g.Name, Count: g.Table.RowCount()})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Count > summary[j].Count
	})
	return summary
}

// CountValues tallies the distinct values of one column, sorted descending
// by count with first-seen order for ties
func CountValues(t *Table, col int) []SummaryRow {
	var order []string
	counts := make(map[string]int)
	for i := range t.Rows {
		v := t.Cell(i, col)
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, v := range order {
		rows = append(rows, SummaryRow{Category: v, Count: counts[v]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}

var invalidSheetChars = regexp.MustCompile(`[\[\]:*?/\\]`)

// CleanSheetName makes a category value safe as a sheet name: the
// characters []:*?/\ are stripped, names over 31 runes become the first 28
// plus "...", and a blank result falls back to "Sheet".
func CleanSheetName(name string) string {
	name = invalidSheetChars.ReplaceAllString(name, "")

	runes := []rune(name)
	if len(runes) > 31 {
		name = string(runes[:28]) + "..."
	}

	if isBlank(name) {
		return "Sheet"
	}
	return name
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
