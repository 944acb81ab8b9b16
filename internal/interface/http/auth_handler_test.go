package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericgalbarn/CinemaSignUpLogin/internal/application"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/entity"
	repo "github.com/ericgalbarn/CinemaSignUpLogin/internal/domain/repository"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/interface/middleware"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/validation"
)

type memRepo struct {
	users  map[string]*entity.User
	nextID int
}

func newMemRepo() *memRepo { return &memRepo{users: map[string]*entity.User{}} }

func (m *memRepo) Create(ctx context.Context, u *entity.User, password string) error {
	for _, ex := range m.users {
		if ex.Email == u.Email || ex.Phone == u.Phone {
			return repo.ErrDuplicate
		}
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	m.nextID++
	u.ID = "user-" + strconv.Itoa(m.nextID)
	u.PasswordHash = hash
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) GetByEmailAndType(ctx context.Context, email string, accountType int) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email && u.AccountType == accountType {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) GetByResetOTP(ctx context.Context, otp string, accountType int) (*entity.User, error) {
	for _, u := range m.users {
		if u.ResetOTP != nil && *u.ResetOTP == otp && u.AccountType == accountType {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) SetResetOTP(ctx context.Context, id string, otp string, expires time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.ResetOTP = &otp
	u.ResetOTPExpires = &expires
	return nil
}

func (m *memRepo) ResetPassword(ctx context.Context, id string, otp string, newPassword string) error {
	u, ok := m.users[id]
	if !ok || u.ResetOTP == nil || *u.ResetOTP != otp {
		return repo.ErrNotFound
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.ResetOTP = nil
	u.ResetOTPExpires = nil
	return nil
}

var _ repo.UserRepository = (*memRepo)(nil)

type captureNotifier struct{ lastCode string }

func (n *captureNotifier) PasswordResetCode(ctx context.Context, email, name, code string, expiresAt time.Time) error {
	n.lastCode = code
	return nil
}

type testEnv struct {
	router   *gin.Engine
	repo     *memRepo
	notifier *captureNotifier
	jwt      *helpers.JWTManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	r := newMemRepo()
	n := &captureNotifier{}
	jwt := helpers.NewJWTManager("test-secret", 720*time.Hour)
	svc := application.NewService(r, jwt, n, nil, 10*time.Minute)
	h := NewAuthHandler(svc, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.POST("/auth/sign-in", h.SignIn)
	api.POST("/auth/sign-up", h.SignUp)
	api.POST("/auth/reset-password/request", h.ResetRequest)
	api.GET("/auth/reset-password/check", h.ResetCheck)
	api.POST("/auth/reset-password/check", h.ResetCheck)
	api.POST("/auth/reset-password/finish", h.ResetFinish)

	auth := api.Group("/")
	auth.Use(middleware.Auth(jwt))
	auth.GET("/auth/me", h.Me)

	return &testEnv{router: engine, repo: r, notifier: n, jwt: jwt}
}

func (e *testEnv) do(t *testing.T, method, path string, body map[string]any, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func signUpBody() map[string]any {
	return map[string]any{
		"firstName":   "An",
		"lastName":    "Nguyen",
		"email":       "a@x.com",
		"phone":       "111",
		"dateOfBirth": "1990-01-15",
		"sex":         "male",
		"address":     "1 Tran Hung Dao",
		"password":    "pw1secret",
		"type":        1,
	}
}

func TestSignUpAndSignInFlow(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/auth/sign-up", signUpBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := resp["data"].(map[string]any)
	assert.NotEmpty(t, data["accessToken"])
	userID := data["userId"].(string)
	require.NotEmpty(t, userID)

	w, resp = env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]any{
		"email": "a@x.com", "password": "pw1secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]any)
	assert.Equal(t, userID, data["userId"])

	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]any{
		"email": "a@x.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignInDoesNotRevealExistence(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.do(t, http.MethodPost, "/api/v1/auth/sign-up", signUpBody())

	wWrong, respWrong := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]any{
		"email": "a@x.com", "password": "wrong-password",
	})
	wUnknown, respUnknown := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]any{
		"email": "nobody@x.com", "password": "whatever1",
	})

	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, respWrong["message"], respUnknown["message"])
}

func TestSignUpDuplicate(t *testing.T) {
	env := newTestEnv(t)
	w, _ := env.do(t, http.MethodPost, "/api/v1/auth/sign-up", signUpBody())
	require.Equal(t, http.StatusCreated, w.Code)

	// same phone, different email
	body := signUpBody()
	body["email"] = "other@x.com"
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/sign-up", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpValidationAggregatesFields(t *testing.T) {
	env := newTestEnv(t)
	w, resp := env.do(t, http.MethodPost, "/api/v1/auth/sign-up", map[string]any{
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := resp["error"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "firstName")
}

func TestResetPasswordLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, _ = env.do(t, http.MethodPost, "/api/v1/auth/sign-up", signUpBody())

	// step 1: request
	w, _ := env.do(t, http.MethodPost, "/api/v1/auth/reset-password/request", map[string]any{
		"email": "a@x.com", "type": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	code := env.notifier.lastCode
	require.Len(t, code, 6)

	// step 2: check, repeatable
	for i := 0; i < 2; i++ {
		w, resp := env.do(t, http.MethodPost, "/api/v1/auth/reset-password/check", map[string]any{
			"resetKey": code, "type": 1,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, resp["data"].(map[string]any)["isValid"])
	}

	// step 3: finish
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/reset-password/finish", map[string]any{
		"resetKey": code, "type": 1, "newPassword": "pw2secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// consumed code cannot be reused
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/reset-password/finish", map[string]any{
		"resetKey": code, "type": 1, "newPassword": "pw3secret",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// old password rejected, new accepted
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]any{
		"email": "a@x.com", "password": "pw1secret",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]any{
		"email": "a@x.com", "password": "pw2secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResetRequestUnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/v1/auth/reset-password/request", map[string]any{
		"email": "nobody@x.com", "type": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// missing type is a 400, not a 404
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/reset-password/request", map[string]any{
		"email": "nobody@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-integer type is a 400
	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/reset-password/request", map[string]any{
		"email": "nobody@x.com", "type": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetCheckUnknownCode(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/v1/auth/reset-password/check", map[string]any{
		"resetKey": "123456", "type": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["error"].(map[string]any)["isValid"])
}

func TestMeRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	_, resp := env.do(t, http.MethodPost, "/api/v1/auth/sign-up", signUpBody())
	data := resp["data"].(map[string]any)
	token := data["accessToken"].(string)
	userID := data["userId"].(string)

	w, _ := env.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	profile := resp["data"].(map[string]any)
	assert.Equal(t, userID, profile["id"])
	assert.Equal(t, "a@x.com", profile["email"])
}
