package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/media-vault/internal/auth"
	"github.com/fathima-sithara/media-vault/internal/handlers"
	"github.com/fathima-sithara/media-vault/internal/middleware"
)

type Deps struct {
	Tokens      *auth.Manager
	Auth        *handlers.AuthHandler
	Media       *handlers.MediaHandler
	Profile     *handlers.ProfileHandler
	AuthLimiter fiber.Handler // optional, nil disables
}

func Register(app *fiber.App, d Deps) {
	requireAuth := middleware.RequireAuth(d.Tokens)
	requireAdmin := middleware.RequireAdmin()

	authGroup := app.Group("/auth")
	if d.AuthLimiter != nil {
		authGroup.Use(d.AuthLimiter)
	}
	authGroup.Post("/register", d.Auth.Register)
	authGroup.Post("/login", d.Auth.Login)
	authGroup.Post("/logout", d.Auth.Logout)
	authGroup.Get("/verify", d.Auth.Verify)
	authGroup.Put("/reset_password", requireAuth, d.Auth.ResetPassword)

	media := app.Group("/media", requireAuth)
	admin := media.Group("/admin", requireAdmin)
	admin.Post("/upload", d.Media.Upload)
	admin.Delete("/delete", d.Media.Delete)
	admin.Put("/edit", d.Media.Edit)
	catalog := media.Group("/media")
	catalog.Get("/videos", d.Media.ListVideos)
	catalog.Get("/audios", d.Media.ListAudios)
	catalog.Post("/download", d.Media.Download)
	catalog.Post("/details", d.Media.Details)

	user := app.Group("/user", requireAuth)
	user.Get("/profile", d.Profile.Get)
	user.Put("/profile", d.Profile.Update)
	user.Get("/notifications", d.Profile.Notifications)
	user.Put("/notifications/mark-read", d.Profile.MarkNotificationsRead)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
}
