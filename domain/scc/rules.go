package scc

import (
	"strings"
)

// Rule narrows one category's sheet to an explicit column allow-list
type Rule struct {
	Category      string
	ColumnsToKeep []string
}

// RulesFromTable extracts rules from an uploaded rules table. The table
// must carry "category" and "columns_to_keep" columns (matched on
// normalized header names); otherwise no rules apply.
func RulesFromTable(t *Table) []Rule {
	if t == nil {
		return nil
	}

	categoryIdx, keepIdx := -1, -1
	for i, h := range t.Headers {
		switch Normalize(h) {
		case "category":
			if categoryIdx < 0 {
				categoryIdx = i
			}
		case "columns_to_keep":
			if keepIdx < 0 {
				keepIdx = i
			}
		}
	}
	if categoryIdx < 0 || keepIdx < 0 {
		return nil
	}

	var rules []Rule
	for i := range t.Rows {
		category := t.Cell(i, categoryIdx)
		keepList := t.Cell(i, keepIdx)
		if strings.TrimSpace(category) == "" || strings.TrimSpace(keepList) == "" {
			continue
		}
		var columns []string
		for _, col := range strings.Split(keepList, ",") {
			if trimmed := strings.TrimSpace(col); trimmed != "" {
				columns = append(columns, trimmed)
			}
		}
		if len(columns) == 0 {
			continue
		}
		rules = append(rules, Rule{Category: category, ColumnsToKeep: columns})
	}
	return rules
}

// ApplyRules filters a group down to the columns its matching rule lists,
// in the rule's order. Rules match on the normalized category value. Listed
// columns that don't exist in the group are dropped from the allow-list;
// when none survive, or no rule matches, the group is returned unchanged.
func ApplyRules(group CategoryGroup, rules []Rule) CategoryGroup {
	if len(rules) == 0 {
		return group
	}

	normalizedCategory := Normalize(group.Name)
	var matched *Rule
	for i := range rules {
		if Normalize(rules[i].Category) == normalizedCategory {
			matched = &rules[i]
			break
		}
	}
	if matched == nil {
		return group
	}

	normalizedHeaders := NormalizeHeaders(group.Table.Headers)
	var keep []int
	for _, want := range matched.ColumnsToKeep {
		wantNorm := Normalize(want)
		for i, h := range normalizedHeaders {
			if h == wantNorm {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == 0 {
		return group
	}

	return CategoryGroup{Name: group.Name, Table: group.Table.Select(keep)}
}
