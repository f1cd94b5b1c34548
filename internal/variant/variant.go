// Package variant picks one of several pre-authored content variants for a key.
//
// Selection is a pure function of the variant list and the key: the same inputs give the
// same element in every process, forever. Callers derive independent axes by building
// different keys from the same identifiers (town, town+county, service).
package variant

import (
	"strings"

	"github.com/JakeFAU/areapages/internal/hash/rolling"
)

// Index returns the position selected for key among n variants, or -1 when n <= 0.
func Index(n int, key string) int {
	if n <= 0 {
		return -1
	}
	return int(uint64(rolling.Sum(key)) % uint64(n))
}

// Pick returns variants[hash(key) mod len(variants)]. The boolean is false only when
// variants is empty.
func Pick[T any](variants []T, key string) (T, bool) {
	i := Index(len(variants), key)
	if i < 0 {
		var zero T
		return zero, false
	}
	return variants[i], true
}

// Key joins stable identifiers into a variant key. Parts are concatenated without a
// separator so that "guildford"+"surrey" hashes exactly like the historical key.
func Key(parts ...string) string {
	return strings.Join(parts, "")
}
