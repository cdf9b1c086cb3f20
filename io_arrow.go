package factor

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ============================================================================
// Arrow Export
// ============================================================================

// DictionaryType returns the Arrow type used for factor export: dictionary
// encoded strings with int32 indices.
func DictionaryType() *arrow.DictionaryType {
	return &arrow.DictionaryType{
		IndexType: arrow.PrimitiveTypes.Int32,
		ValueType: arrow.BinaryTypes.String,
	}
}

// ToArrow exports the factor as a dictionary-encoded Arrow array. The
// dictionary holds the levels in rank order, so the level ordering survives
// a round trip. Missing observations become nulls. The caller is
// responsible for calling Release() on the returned array.
func (f *Factor) ToArrow(mem memory.Allocator) (arrow.Array, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	idxBuilder := array.NewInt32Builder(mem)
	defer idxBuilder.Release()
	for _, c := range f.codes {
		if c == missingCode {
			idxBuilder.AppendNull()
		} else {
			idxBuilder.Append(c)
		}
	}
	indices := idxBuilder.NewArray()
	defer indices.Release()

	dictBuilder := array.NewStringBuilder(mem)
	defer dictBuilder.Release()
	dictBuilder.AppendValues(f.levels, nil)
	dict := dictBuilder.NewArray()
	defer dict.Release()

	return array.NewDictionaryArray(DictionaryType(), indices, dict), nil
}

// ============================================================================
// Arrow Import
// ============================================================================

// FromArrow creates a Factor from an Arrow array. Dictionary arrays with
// string values map directly (dictionary order becomes level order, nulls
// become missing); plain string arrays are converted with New.
func FromArrow(arr arrow.Array) (*Factor, error) {
	switch a := arr.(type) {
	case *array.Dictionary:
		dict, ok := a.Dictionary().(*array.String)
		if !ok {
			return nil, fmt.Errorf("unsupported dictionary value type: %T", a.Dictionary())
		}

		levels := make([]string, dict.Len())
		for i := 0; i < dict.Len(); i++ {
			levels[i] = dict.Value(i)
		}

		codes := make([]int32, a.Len())
		switch idx := a.Indices().(type) {
		case *array.Int32:
			for i := 0; i < a.Len(); i++ {
				if a.IsNull(i) {
					codes[i] = missingCode
				} else {
					codes[i] = idx.Value(i)
				}
			}
		case *array.Int64:
			for i := 0; i < a.Len(); i++ {
				if a.IsNull(i) {
					codes[i] = missingCode
				} else {
					codes[i] = int32(idx.Value(i))
				}
			}
		default:
			return nil, fmt.Errorf("unsupported dictionary index type: %T", a.Indices())
		}

		return FromCodes(codes, levels)

	case *array.String:
		values := make([]string, a.Len())
		for i := 0; i < a.Len(); i++ {
			if !a.IsNull(i) {
				values[i] = a.Value(i)
			}
		}
		return New(values), nil

	default:
		return nil, fmt.Errorf("unsupported Arrow array type: %T", arr)
	}
}
