package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/entity"
)

// Error kinds returned uniformly by the store-access layer. Callers
// discriminate with errors.Is rather than inspecting messages.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user-related database operations.
//
// Hashing happens inside the write paths that accept a plaintext password
// (Create, ResetPassword) so callers can never skip it by accident; the only
// raw update is SetResetOTP, which touches the OTP columns exclusively.
type UserRepository interface {
	// Create persists a new user, deriving password_hash from password.
	// Returns ErrDuplicate when email or phone is already taken.
	Create(ctx context.Context, u *entity.User, password string) error

	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndType(ctx context.Context, email string, accountType int) (*entity.User, error)
	GetByResetOTP(ctx context.Context, otp string, accountType int) (*entity.User, error)

	// SetResetOTP writes the reset code and its expiry without touching any
	// other column. A fresh code overwrites a stale one.
	SetResetOTP(ctx context.Context, id string, otp string, expires time.Time) error

	// ResetPassword replaces password_hash with the hash of newPassword and
	// clears both OTP columns in a single statement guarded by otp, so a
	// concurrently finished reset surfaces as ErrNotFound.
	ResetPassword(ctx context.Context, id string, otp string, newPassword string) error
}
