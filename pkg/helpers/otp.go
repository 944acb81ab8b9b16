package helpers

import (
	"crypto/rand"
	"math/big"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// GenResetOTP generates a secure random 6-digit reset code as a string.
// The value is uniform over 100000-999999 inclusive, so the code never has a
// leading zero and modulo bias cannot skew the distribution.
func GenResetOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(otpMin)).String(), nil
}
