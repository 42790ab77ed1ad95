package canonical

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types canonical JSON accepts.
// There is no float type.
type Value interface {
	canonicalValue()
}

// String is a JSON string.
type String string

func (String) canonicalValue() {}

// Int is a JSON integer.
type Int int64

func (Int) canonicalValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) canonicalValue() {}

// Array is a JSON array.
type Array []Value

func (Array) canonicalValue() {}

// Object is a JSON object. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) canonicalValue() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units), which
// differs from Go's byte-wise string order outside the BMP.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
