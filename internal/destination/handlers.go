package destination

import (
	"errors"
	"strconv"

	"github.com/fer-gc05/AventuraLocalApi/internal/auth"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		result, err := svc.List(c.Context(), ListFilter{
			Name:       c.Query("name"),
			CategoryID: c.Query("category_id"),
			Page:       page,
		})
		if err != nil {
			return respond.Internal(c, "Error fetching destinations", err)
		}
		if len(result.Items) == 0 {
			return respond.NotFound(c, "No destinations found")
		}
		return respond.OK(c, "Destinations fetched successfully", result)
	})

	r.Get("/popular", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		destinations, err := svc.Popular(c.Context(), limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving popular destinations", err)
		}
		if len(destinations) == 0 {
			return respond.NotFound(c, "No popular destinations found")
		}
		return respond.OK(c, "Popular destinations retrieved successfully", destinations)
	})

	r.Get("/nearby", authMiddleware, func(c *fiber.Ctx) error {
		radius, _ := strconv.ParseFloat(c.Query("radius"), 64)
		limit, _ := strconv.Atoi(c.Query("limit"))
		result, err := svc.Nearby(c.Context(), NearbyParams{
			DestinationID: c.Query("destination_id"),
			RadiusKm:      radius,
			SearchTerm:    c.Query("searchTerm"),
			Limit:         limit,
		})
		if errors.Is(err, ErrInvalidRadius) || errors.Is(err, ErrInvalidLimit) {
			return respond.BadRequest(c, err.Error())
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Destination not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching nearby destinations", err)
		}
		return respond.OK(c, "Nearby destinations fetched successfully", result)
	})

	r.Get("/trashed", authMiddleware, auth.RequireRole(auth.RoleAdmin), func(c *fiber.Ctx) error {
		destinations, err := svc.Trashed(c.Context())
		if err != nil {
			return respond.Internal(c, "Error retrieving trashed destinations", err)
		}
		if len(destinations) == 0 {
			return respond.NotFound(c, "No trashed destinations found")
		}
		return respond.OK(c, "Trashed destinations retrieved successfully", destinations)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		dest, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Destination not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching destination", err)
		}
		return respond.OK(c, "Destination fetched successfully", dest)
	})

	r.Get("/:id/statistics", authMiddleware, func(c *fiber.Ctx) error {
		statistics, err := svc.Statistics(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Destination not found")
		}
		if err != nil {
			return respond.Internal(c, "Error retrieving destination statistics", err)
		}
		return respond.OK(c, "Destination statistics retrieved successfully", statistics)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Destination
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		if req.Name == "" || req.CategoryID == "" {
			return respond.BadRequest(c, "name and category_id required")
		}
		req.UserID, _ = c.Locals("user_id").(string)
		dest, err := svc.Create(c.Context(), req)
		if err != nil {
			return respond.Internal(c, "Error creating destination", err)
		}
		return respond.Created(c, "Destination created successfully", dest)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Destination
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		dest, err := svc.Update(c.Context(), c.Params("id"), req)
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Destination not found")
		}
		if err != nil {
			return respond.Internal(c, "Error updating destination", err)
		}
		return respond.OK(c, "Destination updated successfully", dest)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return respond.Internal(c, "Error deleting destination", err)
		}
		return respond.OK(c, "Destination deleted successfully", nil)
	})

	r.Post("/:id/restore", authMiddleware, auth.RequireRole(auth.RoleAdmin), func(c *fiber.Ctx) error {
		dest, err := svc.Restore(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Destination not found")
		}
		if err != nil {
			return respond.Internal(c, "Error restoring destination", err)
		}
		return respond.OK(c, "Destination restored successfully", dest)
	})
}
