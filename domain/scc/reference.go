package scc

import (
	"strings"
)

// ProjectColumnDisplay is the readable header used for the project display
// name column in cleaned output.
const ProjectColumnDisplay = "Project Name"

// projectColumnReference is the canonical name whose cleaned header is
// renamed to ProjectColumnDisplay.
const projectColumnReference = "resource.project_display_name"

// DefaultReferenceColumns is the canonical list of Security Command Center
// export columns kept by the cleaner, in output order. Matching is
// case-insensitive and whitespace-trimmed against these names.
var DefaultReferenceColumns = []string{
	// Project and resource info
	"resource.name",
	"resource.display_name",
	"resource.type",
	"resource.service",
	"resource.location",
	"resource.project_name",
	"resource.project_display_name",
	"resource.parent_name",
	"resource.parent_display_name",
	"resource.folders",
	"resource.organization",

	// Finding identity and state
	"finding.name",
	"finding.canonical_name",
	"finding.parent",
	"finding.resource_name",
	"finding.state",
	"finding.category",
	"finding.severity",
	"finding.finding_class",
	"finding.mute",
	"finding.external_uri",
	"finding.source_display_name",
	"finding.module_name",
	"finding.parent_display_name",

	// Timing
	"finding.event_time",
	"finding.create_time",
	"finding.update_time",
	"finding.mute_update_time",

	// Vulnerability data
	"finding.vulnerability.cve.id",
	"finding.vulnerability.cve.cvss_score",
	"finding.vulnerability.cve.upstream_fix_available",
	"finding.vulnerability.cve.impact",
	"finding.vulnerability.cve.exploitation_activity",
	"finding.vulnerability.cve.observed_in_the_wild",
	"finding.vulnerability.cve.zero_day",
	"finding.vulnerability.cve.references",
	"finding.vulnerability.fixed_package.package_name",
	"finding.vulnerability.fixed_package.package_version",
	"finding.vulnerability.offending_package.package_name",
	"finding.vulnerability.offending_package.package_version",

	// Context
	"finding.description",
	"finding.next_steps",
	"finding.compliances",
	"finding.security_marks.marks",
	"finding.indicator.domains",
	"finding.indicator.ip_addresses",
	"finding.contacts.security",
	"finding.contacts.technical",

	// Attack exposure
	"finding.attack_exposure.score",
	"finding.attack_exposure.state",
	"finding.attack_exposure.attack_exposure_result",
	"finding.attack_exposure.latest_calculation_time",
	"finding.attack_exposure.exposed_high_value_resources_count",
	"finding.attack_exposure.exposed_medium_value_resources_count",
	"finding.attack_exposure.exposed_low_value_resources_count",
}

// ColumnMatch binds one reference column to the input column it matched
type ColumnMatch struct {
	Reference   string // canonical reference name
	SourceLabel string // column label as it appeared in the input
	SourceIndex int    // column position in the input
}

// DisplayHeader returns the header written to cleaned output for this match
func (m ColumnMatch) DisplayHeader() string {
	if m.Reference == projectColumnReference {
		return ProjectColumnDisplay
	}
	return m.Reference
}

// Projection is the result of matching input columns against the reference
// list: the matched columns in reference order plus the names that were in
// the reference list but absent from the input.
type Projection struct {
	Columns  []ColumnMatch
	Missing  []string
	Fallback bool // true when only the project-name heuristic matched
}

// MatchReference matches input headers against the reference list. Matched
// columns come back in reference-list order. With zero matches it probes for
// a single project display name column before giving up with
// ErrNoMatchingColumns.
func MatchReference(headers []string, reference []string) (*Projection, error) {
	folded := make(map[string]int, len(headers))
	for i, h := range headers {
		key := foldHeader(h)
		if _, exists := folded[key]; !exists {
			folded[key] = i
		}
	}

	proj := &Projection{}
	for _, ref := range reference {
		if idx, ok := folded[ref]; ok {
			proj.Columns = append(proj.Columns, ColumnMatch{
				Reference:   ref,
				SourceLabel: headers[idx],
				SourceIndex: idx,
			})
		} else {
			proj.Missing = append(proj.Missing, ref)
		}
	}

	if len(proj.Columns) > 0 {
		return proj, nil
	}

	// Last resort: a lone project display name column still makes a usable
	// report.
	if idx := findProjectColumn(headers); idx >= 0 {
		return &Projection{
			Columns: []ColumnMatch{{
				Reference:   projectColumnReference,
				SourceLabel: headers[idx],
				SourceIndex: idx,
			}},
			Missing:  missingAll(reference),
			Fallback: true,
		}, nil
	}

	return nil, ErrNoMatchingColumns
}

// findProjectColumn locates an input column whose lowercased name contains
// "project", "display" and "name", or -1
func findProjectColumn(headers []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "project") &&
			strings.Contains(lower, "display") &&
			strings.Contains(lower, "name") {
			return i
		}
	}
	return -1
}

func missingAll(reference []string) []string {
	missing := make([]string, len(reference))
	copy(missing, reference)
	return missing
}

// CleanTable projects the raw table onto the matched columns, in reference
// order, with display headers applied.
func CleanTable(raw *Table, proj *Projection) *Table {
	cols := make([]int, len(proj.Columns))
	for i, m := range proj.Columns {
		cols[i] = m.SourceIndex
	}
	cleaned := raw.Select(cols)
	for i, m := range proj.Columns {
		cleaned.Headers[i] = m.DisplayHeader()
	}
	return cleaned
}
