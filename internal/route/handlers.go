package route

import (
	"errors"
	"strconv"

	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/popular", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		routes, err := svc.Popular(c.Context(), limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving popular routes", err)
		}
		if len(routes) == 0 {
			return respond.NotFound(c, "No popular routes found")
		}
		return respond.OK(c, "Popular routes retrieved successfully", routes)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		route, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Route not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching route", err)
		}
		return respond.OK(c, "Route fetched successfully", route)
	})

	r.Get("/:id/statistics", authMiddleware, func(c *fiber.Ctx) error {
		statistics, err := svc.Statistics(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Route not found")
		}
		if err != nil {
			return respond.Internal(c, "Error retrieving route statistics", err)
		}
		return respond.OK(c, "Route statistics retrieved successfully", statistics)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Route
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		if req.Name == "" {
			return respond.BadRequest(c, "name required")
		}
		req.UserID, _ = c.Locals("user_id").(string)
		route, err := svc.Create(c.Context(), req)
		if err != nil {
			return respond.Internal(c, "Error creating route", err)
		}
		return respond.Created(c, "Route created successfully", route)
	})
}
