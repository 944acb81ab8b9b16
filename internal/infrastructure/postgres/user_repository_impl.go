package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/entity"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/repository"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
)

const userColumns = `id, first_name, last_name, email, phone, date_of_birth, sex, address,
		account_type, password_hash, reset_otp, reset_otp_expires, created_at, updated_at`

// Querier is the subset of pgxpool.Pool the repository needs; tests substitute
// a pgxmock pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Create persists a new user. The bcrypt hash is derived here, on the write
// path, so callers never handle a pre-hashed value.
func (r *UserRepository) Create(ctx context.Context, u *entity.User, password string) error {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, phone, date_of_birth, sex, address, account_type, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.Phone, u.DateOfBirth, u.Sex, u.Address, u.AccountType, hash)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.DateOfBirth,
		&u.Sex, &u.Address, &u.AccountType, &u.PasswordHash, &u.ResetOTP, &u.ResetOTPExpires,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByEmailAndType(ctx context.Context, email string, accountType int) (*entity.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1 AND account_type = $2
	`, email, accountType))
}

func (r *UserRepository) GetByResetOTP(ctx context.Context, otp string, accountType int) (*entity.User, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_otp = $1 AND account_type = $2
	`, otp, accountType))
}

// SetResetOTP is the raw update path: it writes only the OTP columns, leaving
// password_hash untouched.
func (r *UserRepository) SetResetOTP(ctx context.Context, id string, otp string, expires time.Time) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_otp = $1, reset_otp_expires = $2, updated_at = now()
		WHERE id = $3
	`, otp, expires, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ResetPassword replaces the hash and clears both OTP columns in a single
// statement. The otp guard makes the write a no-op when another request
// already consumed the code.
func (r *UserRepository) ResetPassword(ctx context.Context, id string, otp string, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_otp = NULL, reset_otp_expires = NULL, updated_at = now()
		WHERE id = $2 AND reset_otp = $3
	`, hash, id, otp)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
