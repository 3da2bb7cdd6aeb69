package scc

// Stats summarizes what one cleaning run did to the uploaded export.
type Stats struct {
	OriginalColumns int      `json:"original_columns"`
	CleanedColumns  int      `json:"cleaned_columns"`
	OriginalRows    int      `json:"original_rows"`
	MissingColumns  []string `json:"missing_columns"`
	Categories      int      `json:"categories"`
	Warnings        []string `json:"warnings"`
}

// Report is the complete outcome of the cleaning pipeline: which reference
// columns matched, the per-category tables, and the summary counts that feed
// the Summary sheet.
type Report struct {
	Projection *Projection
	Groups     []CategoryGroup
	Summary    []SummaryRow
	Stats      Stats
}

// BuildReport runs the full pipeline over a raw table: validation, reference
// matching, category splitting, and per-category rule filtering. The category
// column is detected on the raw headers so splitting still works when the
// source labels its categories outside the reference set.
func BuildReport(raw *Table, rules []Rule, reference []string) (*Report, error) {
	warnings, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	projection, err := MatchReference(raw.Headers, reference)
	if err != nil {
		return nil, err
	}
	if projection.Fallback {
		warnings = append(warnings, "no reference columns matched, kept project-like columns instead")
	}

	cleaned := CleanTable(raw, projection)
	categoryCol := DetectCategoryColumn(raw.Headers)
	groups := SplitByCategory(cleaned, raw, categoryCol)
	for i := range groups {
		groups[i] = ApplyRules(groups[i], rules)
	}
	summary := Summarize(groups)

	return &Report{
		Projection: projection,
		Groups:     groups,
		Summary:    summary,
		Stats: Stats{
			OriginalColumns: raw.ColumnCount(),
			CleanedColumns:  cleaned.ColumnCount(),
			OriginalRows:    raw.RowCount(),
			MissingColumns:  projection.Missing,
			Categories:      len(groups),
			Warnings:        warnings,
		},
	}, nil
}
