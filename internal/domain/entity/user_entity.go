package entity

import (
	"time"
)

// Account types as used by the cinema frontend. Stored as a small integer so
// reset lookups can be scoped per audience.
const (
	AccountTypeStaff = 0
	AccountTypeUser  = 1 // default when sign-up omits the field
)

// User is the aggregate root for the auth domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
//
// ResetOTP and ResetOTPExpires are set together while a password reset is in
// progress and cleared together when it finishes; one is never persisted
// without the other.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  time.Time
	Sex          string
	Address      string
	AccountType  int
	PasswordHash string

	ResetOTP        *string
	ResetOTPExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResetOTPValid reports whether an in-progress reset code is still usable at
// the given instant. Validity is computed from the clock, never cached.
func (u *User) ResetOTPValid(now time.Time) bool {
	if u.ResetOTP == nil || u.ResetOTPExpires == nil {
		return false
	}
	return now.Before(*u.ResetOTPExpires)
}
