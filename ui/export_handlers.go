package ui

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"prism/app"

	apperrors "prism/internal/errors"
)

// exportUploadFromRequest pulls the export file plus the optional rules
// table out of a multipart form
func exportUploadFromRequest(r *http.Request) (app.ExportUpload, []multipart.File, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return app.ExportUpload{}, nil, apperrors.ValidationError("no file uploaded")
	}

	upload := app.ExportUpload{
		Filename: header.Filename,
		File:     file,
		Size:     header.Size,
	}
	open := []multipart.File{file}

	rules, rulesHeader, err := r.FormFile("rules")
	if err == nil {
		upload.RulesName = rulesHeader.Filename
		upload.Rules = rules
		open = append(open, rules)
	}

	return upload, open, nil
}

// handleProcessExport converts an uploaded export into the cleaned workbook
// and streams it back as a download
func (a *App) handleProcessExport(w http.ResponseWriter, r *http.Request) {
	upload, open, err := exportUploadFromRequest(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()

	result, err := a.exports.Process(r.Context(), upload)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	w.Header().Set("X-Prism-Original-Rows", strconv.Itoa(result.Stats.OriginalRows))
	w.Header().Set("X-Prism-Original-Columns", strconv.Itoa(result.Stats.OriginalColumns))
	w.Header().Set("X-Prism-Cleaned-Columns", strconv.Itoa(result.Stats.CleanedColumns))
	w.Header().Set("X-Prism-Categories", strconv.Itoa(result.Stats.Categories))
	w.Header().Set("X-Prism-Missing-Columns", strconv.Itoa(len(result.Stats.MissingColumns)))
	if len(result.Stats.Warnings) > 0 {
		w.Header().Set("X-Prism-Warnings", strings.Join(result.Stats.Warnings, "; "))
	}

	w.WriteHeader(http.StatusOK)
	w.Write(result.Workbook.Bytes())
}

// handlePreviewExport runs the pipeline without producing a workbook
func (a *App) handlePreviewExport(w http.ResponseWriter, r *http.Request) {
	upload, open, err := exportUploadFromRequest(r)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()

	preview, err := a.exports.Preview(r.Context(), upload)
	if err != nil {
		respondError(w, a.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}
