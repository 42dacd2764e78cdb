package webapi

import (
	"errors"

	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/account"
	"github.com/amitrawal/railbank/pkg/money"
	authsvc "github.com/amitrawal/railbank/pkg/service/auth"
	ressvc "github.com/amitrawal/railbank/pkg/service/reservation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response is the standard success envelope.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorResponseJSON writes an RFC 9457 problem response.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, account.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, authsvc.ErrInvalidCredentials),
		errors.Is(err, account.ErrInvalidPIN):
		return fiber.StatusUnauthorized
	case errors.Is(err, account.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, account.ErrAmountMustBePositive),
		errors.Is(err, account.ErrCannotTransferToSameAccount),
		errors.Is(err, ressvc.ErrCancellationAborted):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// DomainErrorJSON writes the problem response for a service error.
func DomainErrorJSON(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	title := "Request failed"
	if status == fiber.StatusInternalServerError {
		title = "Internal Server Error"
	}
	return ErrorResponseJSON(c, status, title, err.Error())
}

// validate is shared by all handlers; the validator caches struct metadata,
// so one instance serves every request.
var validate = validator.New()

// BindAndValidate parses the request body into T and validates it. On
// failure the error response has already been written and the returned
// pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
