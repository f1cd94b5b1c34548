// Package rolling provides the 32-bit polynomial string hash used to pick content variants.
//
// The output of Sum is a durable contract: every page on the site renders whichever variant
// Sum selects for its key, so the algorithm must never change. It multiplies by 31 and adds
// each UTF-16 code unit, wrapping to a signed 32-bit integer, and finally takes the absolute
// value. Strings made only of BMP characters hash the same way as Java's String.hashCode
// (modulo the sign).
package rolling

import "unicode/utf16"

// Sum hashes key. The result is always non-negative; the single key class whose wrapped
// value is math.MinInt32 hashes to 2147483648, which is why the return type is unsigned.
func Sum(key string) uint32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(key)) {
		h = h*31 + int32(unit)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}
