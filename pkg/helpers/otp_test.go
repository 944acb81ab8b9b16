package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenResetOTPRange(t *testing.T) {
	for i := 0; i < 2000; i++ {
		code, err := GenResetOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenResetOTPSpread(t *testing.T) {
	// A coarse uniformity check: with 3000 draws over 9 equal buckets, an
	// empty bucket is (8/9)^3000, effectively impossible.
	buckets := map[byte]int{}
	for i := 0; i < 3000; i++ {
		code, err := GenResetOTP()
		require.NoError(t, err)
		buckets[code[0]]++
	}
	for d := byte('1'); d <= '9'; d++ {
		assert.Greater(t, buckets[d], 0, "no codes starting with %c", d)
	}
}
