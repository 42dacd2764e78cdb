package webapi

import (
	"time"

	resdomain "github.com/amitrawal/railbank/pkg/domain/reservation"
	authsvc "github.com/amitrawal/railbank/pkg/service/auth"
	ressvc "github.com/amitrawal/railbank/pkg/service/reservation"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ReservationRead is the wire form of a reservation.
type ReservationRead struct {
	PNR       string `json:"pnr"`
	Owner     string `json:"owner"`
	Passenger string `json:"passenger"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	TrainNo   string `json:"train_no"`
	TrainName string `json:"train_name"`
	Class     string `json:"class"`
	Date      string `json:"date"`
	From      string `json:"from"`
	To        string `json:"to"`
}

func toReservationRead(r *resdomain.Reservation) ReservationRead {
	return ReservationRead{
		PNR:       r.PNR,
		Owner:     r.Owner,
		Passenger: r.Passenger,
		Age:       r.Age,
		Gender:    r.Gender,
		TrainNo:   r.TrainNo,
		TrainName: r.TrainName,
		Class:     r.Class,
		Date:      r.Date.Format(resdomain.DateLayout),
		From:      r.From,
		To:        r.To,
	}
}

// requestIdentity pulls the authenticated username out of the JWT the
// middleware stored on the context.
func requestIdentity(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	return authsvc.Identity(token)
}

// ReservationRoutes mounts the JWT-protected reservation endpoints.
func ReservationRoutes(app *fiber.App, svc *ressvc.Service) {
	app.Post("/reservations", BookReservation(svc))
	app.Get("/reservations", ListReservations(svc))
	app.Get("/reservations/:pnr", GetReservation(svc))
	app.Delete("/reservations/:pnr", CancelReservation(svc))
}

// BookReservation creates a reservation owned by the authenticated user.
func BookReservation(svc *ressvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := requestIdentity(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := BindAndValidate[ressvc.BookInput](c)
		if input == nil {
			return err
		}
		r, err := svc.Book(identity, *input)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Reservation successful", toReservationRead(r))
	}
}

// ListReservations returns the authenticated user's reservations.
func ListReservations(svc *ressvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := requestIdentity(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		records, err := svc.ListByOwner(identity)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		out := make([]ReservationRead, len(records))
		for i, r := range records {
			out[i] = toReservationRead(r)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "OK", out)
	}
}

// GetReservation returns one of the authenticated user's reservations.
// Other users' records come back as 403, mirroring the cancel ownership
// rule rather than leaking their contents.
func GetReservation(svc *ressvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := requestIdentity(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		r, err := svc.Find(c.Params("pnr"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		if r.Owner != identity {
			return ErrorResponseJSON(c, fiber.StatusForbidden, "Forbidden",
				"you can only view your own reservations")
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "OK", toReservationRead(r))
	}
}

// CancelReservation removes a reservation. The explicit confirmation step
// of the console flow maps to the confirm=true query parameter.
func CancelReservation(svc *ressvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := requestIdentity(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		confirmed := c.Query("confirm") == "true"
		err = svc.Cancel(c.Params("pnr"), identity, func(*resdomain.Reservation) bool {
			return confirmed
		})
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Cancellation confirmed", fiber.Map{
			"pnr":          c.Params("pnr"),
			"cancelled_at": time.Now().UTC(),
		})
	}
}
