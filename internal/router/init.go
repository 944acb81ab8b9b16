package router

import (
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/application"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/container"
	pginfra "github.com/ericgalbarn/CinemaSignUpLogin/internal/infrastructure/postgres"
	handlers "github.com/ericgalbarn/CinemaSignUpLogin/internal/interface/http"
	"github.com/ericgalbarn/CinemaSignUpLogin/internal/router/modules"
	"github.com/ericgalbarn/CinemaSignUpLogin/pkg/notify"
)

func buildAuthModule() *modules.AuthModule {
	cfg := container.GetConfig()

	repo := pginfra.NewUserRepository(container.GetPGPool())

	var notifier notify.Notifier = notify.NewLogNotifier(container.GetLogger())
	if cfg.MailSendEnabled && container.GetRabbitPub() != nil {
		notifier = notify.NewQueueNotifier(container.GetRabbitPub())
	}

	service := application.NewService(
		repo,
		container.GetJWT(),
		notifier,
		container.GetLogger(),
		cfg.ResetOTPTTL,
	)

	handler := handlers.NewAuthHandler(service, container.GetLogger())

	return modules.NewAuthModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
}
