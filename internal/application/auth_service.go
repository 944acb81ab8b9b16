package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/entity"
	repo "github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/repository"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/notify"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrOTPInvalid         = errors.New("reset code invalid")
	ErrOTPExpired         = errors.New("reset code expired")
)

// Service orchestrates sign-in, sign-up and the 3-step password reset flow
// over the user repository.
type Service struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Notifier notify.Notifier
	Logger   *logrus.Logger
	OTPTTL   time.Duration

	now func() time.Time // injectable clock
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, notifier notify.Notifier, logger *logrus.Logger, otpTTL time.Duration) *Service {
	return &Service{
		Repo:     r,
		JWT:      jwt,
		Notifier: notifier,
		Logger:   logger,
		OTPTTL:   otpTTL,
		now:      time.Now,
	}
}

// AuthResult is returned by SignIn and SignUp.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      string
}

// SignIn validates email/password and issues a bearer token. An unknown email
// and a wrong password both map to ErrInvalidCredentials so the response does
// not reveal whether the account exists.
func (s *Service) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(u)
}

// SignUpInput carries the profile fields collected by the sign-up form.
// The password arrives in plaintext and is hashed by the repository write path.
type SignUpInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth time.Time
	Sex         string
	Address     string
	Password    string
	AccountType *int // nil: default to AccountTypeUser
}

// SignUp creates an account and issues a token. Email and phone are each
// unique; a collision on either maps to ErrDuplicateUser.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error) {
	accountType := entity.AccountTypeUser
	if in.AccountType != nil {
		accountType = *in.AccountType
	}
	u := &entity.User{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		Sex:         in.Sex,
		Address:     in.Address,
		AccountType: accountType,
	}
	if err := s.Repo.Create(ctx, u, in.Password); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return s.issueToken(u)
}

// RequestReset starts the password reset flow for the account matching
// (email, accountType): it stores a fresh 6-digit code valid for OTPTTL and
// hands it to the notifier. A pending code from an earlier request is
// overwritten. Delivery failure is logged, not surfaced; the code is already
// persisted and the user can retry.
func (s *Service) RequestReset(ctx context.Context, email string, accountType int) error {
	u, err := s.Repo.GetByEmailAndType(ctx, email, accountType)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	code, err := helpers.GenResetOTP()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.OTPTTL)
	if err := s.Repo.SetResetOTP(ctx, u.ID, code, expires); err != nil {
		return err
	}
	if err := s.Notifier.PasswordResetCode(ctx, u.Email, u.FirstName, code, expires); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("reset code notification failed")
	}
	return nil
}

// CheckResetOTP reports whether the code is currently usable for the given
// account type. It is read-only and idempotent; callers may poll it.
func (s *Service) CheckResetOTP(ctx context.Context, otp string, accountType int) (bool, error) {
	u, err := s.Repo.GetByResetOTP(ctx, otp, accountType)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrOTPInvalid
		}
		return false, err
	}
	if !u.ResetOTPValid(s.now()) {
		return false, ErrOTPExpired
	}
	return true, nil
}

// FinishReset consumes the code: it replaces the password hash and clears the
// OTP columns in one write. The repository guards the update on the code, so
// a concurrently consumed code comes back as ErrUserNotFound.
func (s *Service) FinishReset(ctx context.Context, otp string, accountType int, newPassword string) error {
	u, err := s.Repo.GetByResetOTP(ctx, otp, accountType)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !u.ResetOTPValid(s.now()) {
		return ErrOTPExpired
	}
	if err := s.Repo.ResetPassword(ctx, u.ID, otp, newPassword); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetProfile returns the user behind a validated token.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issueToken(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: exp, UserID: u.ID}, nil
}
