package tools

import "unsafe"

// BytesToString converts a byte slice to a string without copying.
// The slice must not be mutated afterwards.
func BytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts a string to a byte slice without copying.
// The result must not be mutated.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
