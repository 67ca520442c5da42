package tabular

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
)

var (
	// ErrEmptyDataset is returned when the input holds no rows at all.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrMissingHeader is returned when the first row has no column names.
	ErrMissingHeader = errors.New("dataset missing header row")

	// ErrUnsupportedFormat is returned for file types we cannot read.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// CellError describes why one cell could not be read. It matches models.ErrValidation.
type CellError struct {
	Line   int
	Column string
	Reason string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Reason)
}

// Unwrap lets errors.Is(err, models.ErrValidation) match cell errors.
func (e *CellError) Unwrap() error {
	return models.ErrValidation
}

// Dataset is a header row plus the data rows beneath it.
type Dataset struct {
	Headers []string
	Rows    []Row
}

// Row gives named access to one data row. Line is the 1-based line in the source, header included.
type Row struct {
	Line  int
	cells map[string]string
}

// NewRow builds a row from column/value pairs. Column names are normalized like headers.
func NewRow(line int, values map[string]string) Row {
	cells := make(map[string]string, len(values))
	for k, v := range values {
		cells[normalizeHeader(k)] = strings.TrimSpace(v)
	}
	return Row{Line: line, cells: cells}
}

func build(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	headers := make([]string, len(records[0]))
	named := 0
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
		if headers[i] != "" {
			named++
		}
	}
	if named == 0 {
		return nil, ErrMissingHeader
	}

	ds := &Dataset{Headers: headers}
	for i, record := range records[1:] {
		cells := make(map[string]string, len(headers))
		blank := true
		for col, h := range headers {
			if h == "" || col >= len(record) {
				continue
			}
			v := strings.TrimSpace(record[col])
			if v != "" {
				blank = false
			}
			cells[h] = v
		}
		if blank {
			continue
		}
		ds.Rows = append(ds.Rows, Row{Line: i + 2, cells: cells})
	}

	return ds, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// Has reports whether the column holds a non-blank value.
func (r Row) Has(col string) bool {
	return r.cells[col] != ""
}

// String returns a required, non-blank text value.
func (r Row) String(col string) (string, error) {
	v := r.cells[col]
	if v == "" {
		return "", r.fail(col, "value is required")
	}
	return v, nil
}

// Float returns a required numeric value.
func (r Row) Float(col string) (float64, error) {
	v := r.cells[col]
	if v == "" {
		return 0, r.fail(col, "value is required")
	}
	f, err := parseNumber(v)
	if err != nil {
		return 0, r.fail(col, fmt.Sprintf("%q is not a number", v))
	}
	return f, nil
}

// FloatOrZero returns 0 for a missing or blank column and fails only on malformed values.
func (r Row) FloatOrZero(col string) (float64, error) {
	if !r.Has(col) {
		return 0, nil
	}
	return r.Float(col)
}

// Int returns a required whole number. Spreadsheet floats such as "5.0" are accepted.
func (r Row) Int(col string) (int, error) {
	f, err := r.Float(col)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, r.fail(col, fmt.Sprintf("%v is not a whole number", f))
	}
	return int(f), nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	"2-1-2006",
}

// Date returns a required calendar date as UTC midnight. Excel serial numbers are accepted.
func (r Row) Date(col string) (time.Time, error) {
	v := r.cells[col]
	if v == "" {
		return time.Time{}, r.fail(col, "value is required")
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, r.fail(col, fmt.Sprintf("%q is not a valid date serial", v))
		}
		return midnight(t.Add(time.Second / 2)), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return midnight(t), nil
		}
	}
	return time.Time{}, r.fail(col, fmt.Sprintf("%q is not a date", v))
}

// Clock returns a time-of-day value. Excel day fractions become "HH:MM"; text is returned unchanged.
func (r Row) Clock(col string) (string, error) {
	v, err := r.String(col)
	if err != nil {
		return "", err
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f < 1 {
		minutes := int(math.Round(f * 24 * 60))
		return fmt.Sprintf("%02d:%02d", minutes/60%24, minutes%60), nil
	}
	return v, nil
}

func (r Row) fail(col, reason string) error {
	return &CellError{Line: r.Line, Column: col, Reason: reason}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseNumber(v string) (float64, error) {
	v = strings.ReplaceAll(v, " ", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", v)
	}
	return f, nil
}
