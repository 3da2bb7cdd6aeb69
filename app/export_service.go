package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"prism/adapters/excel"
	"prism/domain/scc"
	"prism/internal/metrics"

	apperrors "prism/internal/errors"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
)

// ExportUpload is one uploaded export plus its optional rules table
type ExportUpload struct {
	Filename  string
	File      io.Reader
	Size      int64
	RulesName string
	Rules     io.Reader // nil when no rules table was uploaded
}

// ExportResult is a finished conversion: the workbook bytes plus the run's
// stats for response headers and logs
type ExportResult struct {
	Filename    string
	ContentType string
	Workbook    *bytes.Buffer
	Stats       scc.Stats
	Summary     []scc.SummaryRow
}

// ProjectCount is one project's finding count in a preview
type ProjectCount struct {
	Project string `json:"project"`
	Count   int    `json:"count"`
}

// ScoreStats summarizes one numeric score column in a preview
type ScoreStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// ExportPreview describes an upload without producing a workbook
type ExportPreview struct {
	Stats      scc.Stats      `json:"stats"`
	Projects   []ProjectCount `json:"projects"`
	ScoreStats []ScoreStats   `json:"score_stats"`
}

// scoreColumns are the numeric columns the preview summarizes when present
var scoreColumns = []string{
	"finding.vulnerability.cve.cvss_score",
	"finding.attack_exposure.score",
}

// ExportService runs the cleaning pipeline over uploaded exports. A weighted
// semaphore caps concurrent conversions so parallel large uploads cannot
// exhaust memory.
type ExportService struct {
	reference []string
	maxBytes  int64
	sem       *semaphore.Weighted
	writer    *excel.WorkbookWriter
	metrics   *metrics.Metrics
	logger    *log.Logger
}

// NewExportService creates an export service
func NewExportService(reference []string, maxBytes int64, maxConcurrent int, m *metrics.Metrics, logger *log.Logger) *ExportService {
	if len(reference) == 0 {
		reference = scc.DefaultReferenceColumns
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &ExportService{
		reference: reference,
		maxBytes:  maxBytes,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
		writer:    excel.NewWorkbookWriter(),
		metrics:   m,
		logger:    logger,
	}
}

// Process validates, cleans and renders one uploaded export. The returned
// workbook lives entirely in memory.
func (s *ExportService) Process(ctx context.Context, upload ExportUpload) (*ExportResult, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, "conversion cancelled while waiting for a slot")
	}
	defer s.sem.Release(1)

	report, err := s.buildReport(upload)
	if err != nil {
		s.metrics.ExportFailed()
		return nil, err
	}

	workbook, err := s.writer.Write(report)
	if err != nil {
		s.metrics.ExportFailed()
		return nil, apperrors.Wrap(err, "failed to render workbook")
	}

	s.metrics.ExportSucceeded(report.Stats.OriginalRows)
	s.logger.Info("export cleaned",
		"file", upload.Filename,
		"rows", report.Stats.OriginalRows,
		"columns", report.Stats.CleanedColumns,
		"categories", report.Stats.Categories)

	return &ExportResult{
		Filename:    excel.CleanedFilename(upload.Filename, time.Now()),
		ContentType: excel.ContentType,
		Workbook:    workbook,
		Stats:       report.Stats,
		Summary:     report.Summary,
	}, nil
}

// Preview runs the pipeline without rendering a workbook and adds the
// per-project counts and score statistics
func (s *ExportService) Preview(ctx context.Context, upload ExportUpload) (*ExportPreview, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, "preview cancelled while waiting for a slot")
	}
	defer s.sem.Release(1)

	report, err := s.buildReport(upload)
	if err != nil {
		s.metrics.ExportFailed()
		return nil, err
	}

	cleaned := mergeGroups(report)
	return &ExportPreview{
		Stats:      report.Stats,
		Projects:   projectCounts(cleaned),
		ScoreStats: scoreStatistics(cleaned),
	}, nil
}

// buildReport parses the upload, applies the size gate and runs the domain
// pipeline, mapping domain failures onto API error codes
func (s *ExportService) buildReport(upload ExportUpload) (*scc.Report, error) {
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return nil, apperrors.ValidationError(
			fmt.Sprintf("file exceeds the %dMB upload limit", s.maxBytes>>20))
	}

	table, err := excel.NewDataReader(upload.Filename).Read(upload.File)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeValidationError, err)
	}

	var rules []scc.Rule
	if upload.Rules != nil {
		rulesTable, err := excel.NewDataReader(upload.RulesName).Read(upload.Rules)
		if err != nil {
			return nil, apperrors.WithCode(apperrors.CodeValidationError,
				apperrors.Wrap(err, "failed to parse rules file"))
		}
		rules = scc.RulesFromTable(rulesTable)
	}

	report, err := scc.BuildReport(table, rules, s.reference)
	if err != nil {
		if errors.Is(err, scc.ErrNoMatchingColumns) {
			return nil, apperrors.WithCode(apperrors.CodeNoMatchingColumns, err)
		}
		if scc.IsValidationError(err) {
			return nil, apperrors.WithCode(apperrors.CodeValidationError, err)
		}
		return nil, apperrors.Wrap(err, "export processing failed")
	}
	return report, nil
}

// mergeGroups flattens the category groups back into one cleaned table. Rules
// may narrow individual groups, so rows are realigned against the projection
// headers by position where widths still agree.
func mergeGroups(report *scc.Report) *scc.Table {
	headers := make([]string, len(report.Projection.Columns))
	for i, m := range report.Projection.Columns {
		headers[i] = m.DisplayHeader()
	}

	merged := &scc.Table{Headers: headers}
	for _, g := range report.Groups {
		if len(g.Table.Headers) != len(headers) {
			continue
		}
		merged.Rows = append(merged.Rows, g.Table.Rows...)
	}
	return merged
}

// projectCounts tallies findings per project display name, descending
func projectCounts(cleaned *scc.Table) []ProjectCount {
	col := cleaned.ColumnIndex(scc.ProjectColumnDisplay)
	if col < 0 {
		return nil
	}

	rows := scc.CountValues(cleaned, col)
	projects := make([]ProjectCount, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, ProjectCount{Project: r.Category, Count: r.Count})
	}
	return projects
}

// scoreStatistics computes count/mean/median/max for each known numeric
// score column present in the cleaned table
func scoreStatistics(cleaned *scc.Table) []ScoreStats {
	var results []ScoreStats
	for _, column := range scoreColumns {
		col := cleaned.ColumnIndex(column)
		if col < 0 {
			continue
		}

		var values []float64
		for i := range cleaned.Rows {
			if v, err := strconv.ParseFloat(cleaned.Cell(i, col), 64); err == nil {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		data := stats.Float64Data(values)
		mean, err := stats.Mean(data)
		if err != nil {
			continue
		}
		median, err := stats.Median(data)
		if err != nil {
			continue
		}
		max, err := stats.Max(data)
		if err != nil {
			continue
		}

		mean, _ = stats.Round(mean, 2)
		median, _ = stats.Round(median, 2)
		results = append(results, ScoreStats{
			Column: column,
			Count:  len(values),
			Mean:   mean,
			Median: median,
			Max:    max,
		})
	}
	return results
}
