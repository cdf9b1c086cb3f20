package factor

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ParquetWriteOptions configures Parquet writing behavior.
type ParquetWriteOptions struct {
	Compression string // "snappy", "gzip", "zstd", "none" (default "snappy")
	Column      string // Factor column name (default "level")
	ValueColumn string // Numeric column name (default "value")
}

// DefaultParquetWriteOptions returns default Parquet writing options.
func DefaultParquetWriteOptions() ParquetWriteOptions {
	return ParquetWriteOptions{
		Compression: "snappy",
		Column:      "level",
		ValueColumn: "value",
	}
}

// WriteParquet writes the factor's observations (and an optional aligned
// numeric vector) to a Parquet file. Missing observations are written as
// empty strings and read back as missing.
func WriteParquet(path string, f *Factor, x []float64, opts ...ParquetWriteOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	return WriteParquetToWriter(out, f, x, opts...)
}

// WriteParquetToWriter writes the factor's observations to an io.Writer.
func WriteParquetToWriter(w io.Writer, f *Factor, x []float64, opts ...ParquetWriteOptions) error {
	opt := DefaultParquetWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	if x != nil && f.Len() != len(x) {
		return fmt.Errorf("factor has %d observations, x has %d: %w", f.Len(), len(x), ErrLengthMismatch)
	}

	// Build schema as a group of named columns
	group := make(parquet.Group)
	group[opt.Column] = parquet.Leaf(parquet.ByteArrayType)
	if x != nil {
		group[opt.ValueColumn] = parquet.Leaf(parquet.DoubleType)
	}
	schema := parquet.NewSchema("factor", group)

	var writerOpts []parquet.WriterOption
	writerOpts = append(writerOpts, schema)
	switch opt.Compression {
	case "snappy":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Snappy))
	case "gzip":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Gzip))
	case "zstd":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Zstd))
	}

	pw := parquet.NewWriter(w, writerOpts...)
	defer pw.Close()

	// Group schemas order fields by name; write values in that order.
	fields := schema.Fields()

	batchSize := 1000
	rows := make([]parquet.Row, 0, batchSize)
	for i := 0; i < f.Len(); i++ {
		row := make(parquet.Row, len(fields))
		for j, field := range fields {
			if field.Name() == opt.Column {
				label, _ := f.Value(i)
				row[j] = parquet.ByteArrayValue([]byte(label))
			} else {
				row[j] = parquet.DoubleValue(x[i])
			}
		}
		rows = append(rows, row)

		if len(rows) >= batchSize {
			if _, err := pw.WriteRows(rows); err != nil {
				return fmt.Errorf("failed to write rows at %d: %w", i-len(rows)+1, err)
			}
			rows = rows[:0]
		}
	}

	if len(rows) > 0 {
		if _, err := pw.WriteRows(rows); err != nil {
			return fmt.Errorf("failed to write final rows: %w", err)
		}
	}

	return pw.Close()
}

// ParquetReadOptions configures Parquet reading behavior.
type ParquetReadOptions struct {
	Column      string // Factor column name (default "level")
	ValueColumn string // Optional aligned numeric column
	MaxRows     int    // Max rows to read (0 = unlimited)
}

// DefaultParquetReadOptions returns default Parquet reading options.
func DefaultParquetReadOptions() ParquetReadOptions {
	return ParquetReadOptions{Column: "level"}
}

// ReadParquet reads one Parquet column as a Factor, plus an optional
// aligned numeric column when ValueColumn is set.
func ReadParquet(path string, opts ...ParquetReadOptions) (*Factor, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return ReadParquetFromReader(f, stat.Size(), opts...)
}

// ReadParquetFromReader reads Parquet data from an io.ReaderAt.
func ReadParquetFromReader(r io.ReaderAt, size int64, opts ...ParquetReadOptions) (*Factor, []float64, error) {
	opt := DefaultParquetReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
		if opt.Column == "" {
			opt.Column = "level"
		}
	}

	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	schema := pf.Schema()

	colIndexMap := make(map[string]int)
	for i, col := range schema.Columns() {
		if len(col) > 0 {
			colIndexMap[col[0]] = i
		}
	}

	factorIdx, ok := colIndexMap[opt.Column]
	if !ok {
		return nil, nil, fmt.Errorf("column '%s' not found in parquet file", opt.Column)
	}

	valueIdx := -1
	if opt.ValueColumn != "" {
		valueIdx, ok = colIndexMap[opt.ValueColumn]
		if !ok {
			return nil, nil, fmt.Errorf("column '%s' not found in parquet file", opt.ValueColumn)
		}
	}

	var labels []string
	var values []float64
	rowCount := 0

	for _, rg := range pf.RowGroups() {
		if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
			break
		}

		rows := rg.Rows()
		rowBuf := make([]parquet.Row, 1000)
		for {
			n, err := rows.ReadRows(rowBuf)
			if err != nil && err != io.EOF {
				rows.Close()
				return nil, nil, fmt.Errorf("failed to read rows: %w", err)
			}
			if n == 0 {
				break
			}

			for _, row := range rowBuf[:n] {
				if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
					break
				}

				if factorIdx < len(row) && !row[factorIdx].IsNull() {
					labels = append(labels, string(row[factorIdx].ByteArray()))
				} else {
					labels = append(labels, "")
				}

				if valueIdx >= 0 {
					if valueIdx < len(row) && !row[valueIdx].IsNull() {
						values = append(values, row[valueIdx].Double())
					} else {
						values = append(values, math.NaN())
					}
				}
				rowCount++
			}

			if opt.MaxRows > 0 && rowCount >= opt.MaxRows {
				break
			}
		}
		rows.Close()
	}

	return New(labels), values, nil
}
