package code

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_SixDigits(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 100; i++ {
		c := Generate(6)
		assert.Regexp(t, re, c)
		assert.NotEqual(t, byte('0'), c[0], "leading digit must not be zero")
	}
}

func TestGenerate_ConfigurableLength(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), Generate(4))
	assert.Regexp(t, regexp.MustCompile(`^\d{8}$`), Generate(8))
}

func TestGenerate_Distribution(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		seen[Generate(6)] = struct{}{}
	}
	// 100 draws from 900000 values: collisions should be rare.
	assert.GreaterOrEqual(t, len(seen), 95)
}
