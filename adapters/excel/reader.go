package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"prism/domain/scc"

	"github.com/xuri/excelize/v2"
)

// DataReader parses uploaded Excel and CSV exports into tables. The format
// is picked from the uploaded filename's extension.
type DataReader struct {
	filename string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader for an uploaded file
func NewDataReader(filename string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filename: filename, fileType: fileType}
}

// FileType returns the detected format, "xlsx" or "csv"
func (r *DataReader) FileType() string {
	return r.fileType
}

// Read parses the upload into a table. The first row becomes the header;
// short rows are padded so every row aligns with it.
func (r *DataReader) Read(src io.Reader) (*scc.Table, error) {
	switch r.fileType {
	case "csv":
		return r.readCSV(src)
	case "xlsx":
		return r.readXLSX(src)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readCSV(src io.Reader) (*scc.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(rows) == 0 {
		return nil, scc.ErrEmptyFile
	}
	return r.toTable(rows), nil
}

func (r *DataReader) readXLSX(src io.Reader) (*scc.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, scc.ErrEmptyFile
	}

	// Exports carry their data on the first sheet
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, scc.ErrEmptyFile
	}
	return r.toTable(rows), nil
}

func (r *DataReader) toTable(rows [][]string) *scc.Table {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data = append(data, cells)
	}
	return scc.NewTable(headers, data)
}
