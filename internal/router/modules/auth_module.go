package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/ericgalbarn/CinemaSignUpLogin/internal/interface/http"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/interface/middleware"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/helpers"
)

// AuthModule wires the auth endpoints under /api/v1/auth.
// Public: sign-in, sign-up and the 3-step reset flow.
// Protected: GET /auth/me behind the bearer-token middleware.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/sign-in", m.Handler.SignIn)
	rg.POST("/auth/sign-up", m.Handler.SignUp)

	rg.POST("/auth/reset-password/request", m.Handler.ResetRequest)
	// check is read-only and idempotent; the frontend calls it with GET
	rg.GET("/auth/reset-password/check", m.Handler.ResetCheck)
	rg.POST("/auth/reset-password/check", m.Handler.ResetCheck)
	rg.POST("/auth/reset-password/finish", m.Handler.ResetFinish)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
