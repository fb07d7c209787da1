package category

import (
	"errors"
	"strconv"

	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		categories, err := svc.List(c.Context())
		if err != nil {
			return respond.Internal(c, "Error fetching categories", err)
		}
		if len(categories) == 0 {
			return respond.NotFound(c, "No categories found")
		}
		return respond.OK(c, "Categories fetched successfully", categories)
	})

	r.Get("/popular", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		categories, err := svc.Popular(c.Context(), limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving popular categories", err)
		}
		if len(categories) == 0 {
			return respond.NotFound(c, "No popular categories found")
		}
		return respond.OK(c, "Popular categories retrieved successfully", categories)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		category, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Category not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching category", err)
		}
		return respond.OK(c, "Category fetched successfully", category)
	})

	r.Get("/:id/statistics", authMiddleware, func(c *fiber.Ctx) error {
		statistics, err := svc.Statistics(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Category not found")
		}
		if err != nil {
			return respond.Internal(c, "Error retrieving category statistics", err)
		}
		return respond.OK(c, "Category statistics retrieved successfully", statistics)
	})
}
