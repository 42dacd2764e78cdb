// Package webapi serves the ledger core over HTTP. The stores serialize
// their own mutations, so concurrent requests are safe.
package webapi

import (
	"log/slog"

	"github.com/amitrawal/railbank/pkg/config"
	acctsvc "github.com/amitrawal/railbank/pkg/service/account"
	authsvc "github.com/amitrawal/railbank/pkg/service/auth"
	ressvc "github.com/amitrawal/railbank/pkg/service/reservation"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps carries the wired services into the app.
type Deps struct {
	Cfg          *config.App
	Auth         *authsvc.Service
	Reservations *ressvc.Service
	Accounts     *acctsvc.Service
	Logger       *slog.Logger
}

// New assembles the fiber app: public auth routes, then JWT-protected
// reservation and account routes.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "railbank",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("railbank is up")
	})

	AuthRoutes(app, d.Auth)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(d.Cfg.Auth.Jwt.Secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		},
	}))

	ReservationRoutes(app, d.Reservations)
	AccountRoutes(app, d.Accounts)

	return app
}
