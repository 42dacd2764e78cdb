package webapi

import (
	authsvc "github.com/amitrawal/railbank/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
)

// RegisterInput is the registration request body.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthRoutes mounts the public auth endpoints.
func AuthRoutes(app *fiber.App, svc *authsvc.Service) {
	app.Post("/auth/register", Register(svc))
	app.Post("/auth/login", Login(svc))
}

// Register creates a credential.
func Register(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		if err := svc.Register(input.Username, input.Password); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Registration successful", nil)
	}
}

// Login authenticates and returns a JWT token.
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		identity, err := svc.Authenticate(input.Username, input.Password)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		token, err := svc.GenerateToken(identity)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{"token": token})
	}
}
