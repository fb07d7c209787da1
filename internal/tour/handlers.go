package tour

import (
	"errors"

	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id", func(c *fiber.Ctx) error {
		tour, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Tour not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching tour", err)
		}
		return respond.OK(c, "Tour fetched successfully", tour)
	})

	r.Get("/:id/reservations", authMiddleware, func(c *fiber.Ctx) error {
		reservations, err := svc.Reservations(c.Context(), c.Params("id"))
		if err != nil {
			return respond.Internal(c, "Error fetching reservations", err)
		}
		return respond.OK(c, "Reservations fetched successfully", reservations)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Tour
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		if req.Name == "" || req.RouteID == "" {
			return respond.BadRequest(c, "name and route_id required")
		}
		req.UserID, _ = c.Locals("user_id").(string)
		tour, err := svc.Create(c.Context(), req)
		if err != nil {
			return respond.Internal(c, "Error creating tour", err)
		}
		return respond.Created(c, "Tour created successfully", tour)
	})

	r.Post("/:id/reserve", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			Participants int64 `json:"participants"`
		}
		// Body is optional; a bare reserve books one seat.
		_ = c.BodyParser(&req)
		userID, _ := c.Locals("user_id").(string)
		reservation, err := svc.Reserve(c.Context(), c.Params("id"), userID, req.Participants)
		if errors.Is(err, ErrNoSeats) {
			return respond.BadRequest(c, err.Error())
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Tour not found")
		}
		if err != nil {
			return respond.Internal(c, "Error creating reservation", err)
		}
		return respond.Created(c, "Reservation created successfully", reservation)
	})

	r.Delete("/:id/reserve", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.CancelReservation(c.Context(), c.Params("id"), userID); err != nil {
			return respond.Internal(c, "Error cancelling reservation", err)
		}
		return respond.OK(c, "Reservation cancelled successfully", nil)
	})
}
