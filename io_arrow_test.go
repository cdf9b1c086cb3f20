package factor

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

func TestToArrow_RoundTrip(t *testing.T) {
	f, err := NewWithLevels([]string{"b", "a", "", "b"}, []string{"b", "a", "unseen"})
	if err != nil {
		t.Fatalf("NewWithLevels failed: %v", err)
	}

	arr, err := f.ToArrow(memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("ToArrow failed: %v", err)
	}
	defer arr.Release()

	if arr.Len() != f.Len() {
		t.Errorf("arr.Len() = %d, want %d", arr.Len(), f.Len())
	}

	got, err := FromArrow(arr)
	if err != nil {
		t.Fatalf("FromArrow failed: %v", err)
	}

	// level order survives the round trip, including the unseen level
	wantLevels := []string{"b", "a", "unseen"}
	for i, lvl := range got.Levels() {
		if lvl != wantLevels[i] {
			t.Errorf("Levels()[%d] = %q, want %q", i, lvl, wantLevels[i])
		}
	}

	for i := 0; i < f.Len(); i++ {
		wv, wok := f.Value(i)
		gv, gok := got.Value(i)
		if wv != gv || wok != gok {
			t.Errorf("observation %d: got %q (%v), want %q (%v)", i, gv, gok, wv, wok)
		}
	}
}

func TestToArrow_NullForMissing(t *testing.T) {
	f := New([]string{"a", "", "b"})

	arr, err := f.ToArrow(nil)
	if err != nil {
		t.Fatalf("ToArrow failed: %v", err)
	}
	defer arr.Release()

	if !arr.IsNull(1) {
		t.Error("missing observation should export as null")
	}
	if arr.IsNull(0) || arr.IsNull(2) {
		t.Error("present observations should not be null")
	}
}

func TestFromArrow_StringArray(t *testing.T) {
	builder := array.NewStringBuilder(memory.DefaultAllocator)
	defer builder.Release()
	builder.AppendValues([]string{"b", "a", "b"}, nil)
	arr := builder.NewArray()
	defer arr.Release()

	f, err := FromArrow(arr)
	if err != nil {
		t.Fatalf("FromArrow failed: %v", err)
	}

	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
	// plain strings go through New: sorted unique levels
	if got := f.Levels()[0]; got != "a" {
		t.Errorf("Levels()[0] = %q, want \"a\"", got)
	}
}

func TestFromArrow_UnsupportedType(t *testing.T) {
	builder := array.NewInt64Builder(memory.DefaultAllocator)
	defer builder.Release()
	builder.AppendValues([]int64{1, 2}, nil)
	arr := builder.NewArray()
	defer arr.Release()

	if _, err := FromArrow(arr); err == nil {
		t.Error("expected error for non-categorical array type")
	}
}
