package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnReader loads named numeric columns from Excel and CSV files.
// The first row is treated as headers. Blank or non-numeric cells become
// NaN so the gaps survive into the fill engine unchanged.
type ColumnReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// ColumnSet holds the numeric columns of one file, keyed by header.
// Names preserves the file's column order.
type ColumnSet struct {
	Names   []string
	Columns map[string][]float64
}

// Column returns the named column, or false when the file has no such header.
func (cs *ColumnSet) Column(name string) ([]float64, bool) {
	values, ok := cs.Columns[name]
	return values, ok
}

// NewColumnReader creates a reader that handles both Excel and CSV files.
func NewColumnReader(filePath string) *ColumnReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &ColumnReader{filePath: filePath, fileType: fileType}
}

// ReadColumns reads every column of the file into float64 sequences.
func (r *ColumnReader) ReadColumns() (*ColumnSet, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVColumns()
	case "xlsx":
		return r.readExcelColumns()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelColumns reads Sheet1 into column sequences.
func (r *ColumnReader) readExcelColumns() (*ColumnSet, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readCSVColumns reads a CSV file into column sequences.
func (r *ColumnReader) readCSVColumns() (*ColumnSet, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; short rows pad with NaN
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into numeric column sequences.
func (r *ColumnReader) processRows(rows [][]string) (*ColumnSet, error) {
	headerRow := rows[0]
	names := make([]string, len(headerRow))
	for i, header := range headerRow {
		names[i] = strings.TrimSpace(header)
	}

	columns := make(map[string][]float64, len(names))
	for _, name := range names {
		columns[name] = make([]float64, 0, len(rows)-1)
	}

	for _, row := range rows[1:] {
		for j, name := range names {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			columns[name] = append(columns[name], parseCell(cell))
		}
	}

	log.Printf("[ColumnReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(names), len(rows)-1)

	return &ColumnSet{Names: names, Columns: columns}, nil
}

// parseCell maps a cell to a float64, with NaN for anything non-numeric.
func parseCell(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}
