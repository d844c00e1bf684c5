// Package code generates fixed-length numeric email verification codes.
package code

import (
	"math/rand"
	"strconv"
)

// Generate returns a decimal string of exactly length digits, drawn uniformly
// from [10^(length-1), 10^length - 1]. The range deliberately excludes values
// with fewer digits, so the string never needs zero padding. Codes are
// short-lived and attempt-limited, which is why a non-cryptographic PRNG
// suffices here.
func Generate(length int) string {
	min := pow10(length - 1)
	max := pow10(length) - 1
	return strconv.FormatInt(min+rand.Int63n(max-min+1), 10)
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
