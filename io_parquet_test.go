package factor

import (
	"math"
	"path/filepath"
	"testing"
)

func TestWriteParquet_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factor.parquet")

	f := New([]string{"gentoo", "adelie", "", "gentoo"})
	x := []float64{5.0, 3.7, math.NaN(), 5.5}

	if err := WriteParquet(path, f, x); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	got, gotX, err := ReadParquet(path, ParquetReadOptions{
		Column:      "level",
		ValueColumn: "value",
	})
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}

	if got.Len() != f.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), f.Len())
	}
	for i := 0; i < f.Len(); i++ {
		wv, wok := f.Value(i)
		gv, gok := got.Value(i)
		if wv != gv || wok != gok {
			t.Errorf("observation %d: got %q (%v), want %q (%v)", i, gv, gok, wv, wok)
		}
	}

	if len(gotX) != len(x) {
		t.Fatalf("len(values) = %d, want %d", len(gotX), len(x))
	}
	if gotX[0] != 5.0 || gotX[1] != 3.7 || gotX[3] != 5.5 {
		t.Errorf("values did not round-trip: %v", gotX)
	}
	if !math.IsNaN(gotX[2]) {
		t.Errorf("gotX[2] = %v, want NaN", gotX[2])
	}
}

func TestWriteParquet_FactorOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factor.parquet")

	f := New([]string{"a", "b", "a"})
	if err := WriteParquet(path, f, nil); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	got, values, err := ReadParquet(path)
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}

	if got.Len() != 3 {
		t.Errorf("Len() = %d, want 3", got.Len())
	}
	if values != nil {
		t.Errorf("values = %v, want nil when no ValueColumn requested", values)
	}
}

func TestWriteParquet_LengthMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factor.parquet")

	f := New([]string{"a", "b"})
	if err := WriteParquet(path, f, []float64{1}); err == nil {
		t.Error("expected error for mismatched value vector")
	}
}

func TestReadParquet_UnknownColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factor.parquet")

	f := New([]string{"a"})
	if err := WriteParquet(path, f, nil); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	if _, _, err := ReadParquet(path, ParquetReadOptions{Column: "nope"}); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestReadParquet_MaxRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factor.parquet")

	f := New([]string{"a", "b", "c", "d"})
	if err := WriteParquet(path, f, nil); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	got, _, err := ReadParquet(path, ParquetReadOptions{Column: "level", MaxRows: 2})
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
}
