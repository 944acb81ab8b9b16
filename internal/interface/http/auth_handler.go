package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ericgalbarn/CinemaSignUpLogin/internal/application"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/response"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/validation"
)

// AuthHandler exposes the auth core over JSON endpoints. Wire field names
// (accessToken, userId, isValid, type) follow the cinema frontend.
type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signUpRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,dob"`
	Sex         string `json:"sex" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Password    string `json:"password" binding:"required,pwd"`
	Type        *int   `json:"type"` // optional, defaults to standard user
}

type resetRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
	Type  *int   `json:"type" binding:"required"`
}

type resetCheckRequest struct {
	ResetKey string `json:"resetKey" binding:"required,otp"`
	Type     *int   `json:"type" binding:"required"`
}

type resetFinishRequest struct {
	ResetKey    string `json:"resetKey" binding:"required,otp"`
	Type        *int   `json:"type" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

type tokenPayload struct {
	AccessToken string    `json:"accessToken"`
	UserID      string    `json:"userId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type validityPayload struct {
	IsValid bool `json:"isValid"`
}

// SignIn
// POST /auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			// same shape for unknown email and wrong password
			response.Error[any](c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		h.internal(c, err, "sign in failed")
		return
	}
	response.Success(c, http.StatusOK, tokenPayload{AccessToken: res.AccessToken, UserID: res.UserID, ExpiresAt: res.ExpiresAt}, "Login successful")
}

// SignUp
// POST /auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation Failed", validation.ToDetails(err))
		return
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "Validation Failed", map[string]string{"dateOfBirth": "must be a date in format 2006-01-02"})
		return
	}
	res, err := h.Svc.SignUp(c.Request.Context(), application.SignUpInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dob,
		Sex:         req.Sex,
		Address:     req.Address,
		Password:    req.Password,
		AccountType: req.Type,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateUser) {
			response.Error[any](c, http.StatusBadRequest, "Người dùng đã tồn tại",
				"An account with this email or phone number already exists")
			return
		}
		h.internal(c, err, "registration failed")
		return
	}
	response.Success(c, http.StatusCreated, tokenPayload{AccessToken: res.AccessToken, UserID: res.UserID, ExpiresAt: res.ExpiresAt}, "User registered successfully")
}

// ResetRequest starts the reset flow: generates and stores the OTP and hands
// it to the out-of-band channel.
// POST /auth/reset-password/request
func (h *AuthHandler) ResetRequest(c *gin.Context) {
	var req resetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Email và loại người dùng là bắt buộc", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestReset(c.Request.Context(), req.Email, *req.Type); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "Không tìm thấy người dùng với email và loại này", nil)
			return
		}
		h.internal(c, err, "reset request failed")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "OTP đã được gửi đến email của bạn")
}

// ResetCheck reports whether a reset code is currently valid. Read-only and
// idempotent; registered for both GET and POST.
// GET|POST /auth/reset-password/check
func (h *AuthHandler) ResetCheck(c *gin.Context) {
	var req resetCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "OTP và loại người dùng là bắt buộc", validation.ToDetails(err))
		return
	}
	ok, err := h.Svc.CheckResetOTP(c.Request.Context(), req.ResetKey, *req.Type)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOTPInvalid):
			response.Error[validityPayload](c, http.StatusNotFound, "OTP không hợp lệ", validityPayload{IsValid: false})
		case errors.Is(err, application.ErrOTPExpired):
			response.Error[validityPayload](c, http.StatusBadRequest, "OTP đã hết hạn", validityPayload{IsValid: false})
		default:
			h.internal(c, err, "reset check failed")
		}
		return
	}
	response.Success(c, http.StatusOK, validityPayload{IsValid: ok}, "OTP hợp lệ")
}

// ResetFinish consumes the code and sets the new password.
// POST /auth/reset-password/finish
func (h *AuthHandler) ResetFinish(c *gin.Context) {
	var req resetFinishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "OTP, loại người dùng, và mật khẩu mới là bắt buộc", validation.ToDetails(err))
		return
	}
	if err := h.Svc.FinishReset(c.Request.Context(), req.ResetKey, *req.Type, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "OTP không hợp lệ hoặc người dùng không tồn tại", nil)
		case errors.Is(err, application.ErrOTPExpired):
			response.Error[any](c, http.StatusBadRequest, "OTP đã hết hạn", nil)
		default:
			h.internal(c, err, "reset finish failed")
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Mật khẩu đã được cập nhật thành công")
}

// Me returns the profile of the authenticated user.
// GET /auth/me (Bearer token)
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.internal(c, err, "profile lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":          u.ID,
		"firstName":   u.FirstName,
		"lastName":    u.LastName,
		"email":       u.Email,
		"phone":       u.Phone,
		"dateOfBirth": u.DateOfBirth.Format("2006-01-02"),
		"sex":         u.Sex,
		"address":     u.Address,
		"type":        u.AccountType,
		"createdAt":   u.CreatedAt,
		"updatedAt":   u.UpdatedAt,
	}, "profile")
}

// internal logs the cause and returns a 500 with message passthrough for
// diagnostics.
func (h *AuthHandler) internal(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
	response.Error[any](c, http.StatusInternalServerError, "Server error", err.Error())
}
