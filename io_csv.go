package factor

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVReadOptions configures CSV reading behavior.
type CSVReadOptions struct {
	Delimiter   rune     // Field delimiter (default ',')
	HasHeader   bool     // First row is header (default true)
	Column      string   // Factor column name (default: first column)
	ValueColumn string   // Optional aligned numeric column
	NullValues  []string // Strings to treat as missing
	SkipRows    int      // Skip first N rows
	MaxRows     int      // Max rows to read (0 = unlimited)
	TrimSpace   bool     // Trim whitespace from values
	Comment     rune     // Comment character (skip lines starting with this)
}

// DefaultCSVReadOptions returns default CSV reading options.
func DefaultCSVReadOptions() CSVReadOptions {
	return CSVReadOptions{
		Delimiter:  ',',
		HasHeader:  true,
		NullValues: []string{"", "null", "NULL", "NA", "N/A", "nan", "NaN"},
		TrimSpace:  true,
	}
}

// ReadCSV reads one CSV column as a Factor, plus an optional aligned
// numeric column when ValueColumn is set.
func ReadCSV(path string, opts ...CSVReadOptions) (*Factor, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadCSVFromReader(f, opts...)
}

// ReadCSVFromReader reads CSV data from an io.Reader.
func ReadCSVFromReader(r io.Reader, opts ...CSVReadOptions) (*Factor, []float64, error) {
	opt := DefaultCSVReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(r)
	reader.Comma = opt.Delimiter
	if opt.Comment != 0 {
		reader.Comment = opt.Comment
	}
	reader.TrimLeadingSpace = opt.TrimSpace

	for i := 0; i < opt.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, nil, fmt.Errorf("failed to skip row %d: %w", i, err)
		}
	}

	var headers []string
	if opt.HasHeader {
		var err error
		headers, err = reader.Read()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read header: %w", err)
		}
	}

	factorIdx := 0
	valueIdx := -1
	if opt.Column != "" {
		factorIdx = columnIndex(headers, opt.Column)
		if factorIdx < 0 {
			return nil, nil, fmt.Errorf("column '%s' not found in header", opt.Column)
		}
	}
	if opt.ValueColumn != "" {
		valueIdx = columnIndex(headers, opt.ValueColumn)
		if valueIdx < 0 {
			return nil, nil, fmt.Errorf("column '%s' not found in header", opt.ValueColumn)
		}
	}

	nulls := make(map[string]struct{}, len(opt.NullValues))
	for _, nv := range opt.NullValues {
		nulls[nv] = struct{}{}
	}

	var labels []string
	var values []float64
	rowCount := 0
	for {
		if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
			break
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", rowCount, err)
		}

		if factorIdx >= len(record) {
			return nil, nil, fmt.Errorf("row %d has %d fields, need column %d", rowCount, len(record), factorIdx)
		}

		label := record[factorIdx]
		if opt.TrimSpace {
			label = strings.TrimSpace(label)
		}
		if _, isNull := nulls[label]; isNull {
			label = ""
		}
		labels = append(labels, label)

		if valueIdx >= 0 {
			if valueIdx >= len(record) {
				return nil, nil, fmt.Errorf("row %d has %d fields, need column %d", rowCount, len(record), valueIdx)
			}
			raw := record[valueIdx]
			if opt.TrimSpace {
				raw = strings.TrimSpace(raw)
			}
			if _, isNull := nulls[raw]; isNull {
				values = append(values, math.NaN())
			} else {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("row %d: cannot parse '%s' as float64", rowCount, raw)
				}
				values = append(values, v)
			}
		}

		rowCount++
	}

	return New(labels), values, nil
}

func columnIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// CSVWriteOptions configures CSV writing behavior.
type CSVWriteOptions struct {
	Delimiter   rune   // Field delimiter (default ',')
	WriteHeader bool   // Write a header row (default true)
	Column      string // Factor column name (default "level")
	ValueColumn string // Numeric column name (default "value")
}

// DefaultCSVWriteOptions returns default CSV writing options.
func DefaultCSVWriteOptions() CSVWriteOptions {
	return CSVWriteOptions{
		Delimiter:   ',',
		WriteHeader: true,
		Column:      "level",
		ValueColumn: "value",
	}
}

// WriteCSV writes the factor's observations (and an optional aligned
// numeric vector) to a CSV file. Missing observations are written as empty
// fields, so reading the file back reconstructs them as missing.
func WriteCSV(path string, f *Factor, x []float64, opts ...CSVWriteOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	return WriteCSVToWriter(out, f, x, opts...)
}

// WriteCSVToWriter writes the factor's observations to an io.Writer.
func WriteCSVToWriter(w io.Writer, f *Factor, x []float64, opts ...CSVWriteOptions) error {
	opt := DefaultCSVWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	if x != nil && f.Len() != len(x) {
		return fmt.Errorf("factor has %d observations, x has %d: %w", f.Len(), len(x), ErrLengthMismatch)
	}

	writer := csv.NewWriter(w)
	writer.Comma = opt.Delimiter

	if opt.WriteHeader {
		header := []string{opt.Column}
		if x != nil {
			header = append(header, opt.ValueColumn)
		}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i := 0; i < f.Len(); i++ {
		label, _ := f.Value(i)
		row := []string{label}
		if x != nil {
			if math.IsNaN(x[i]) {
				row = append(row, "")
			} else {
				row = append(row, strconv.FormatFloat(x[i], 'g', -1, 64))
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
