package user

import (
	"errors"

	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/statistics", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		statistics, err := svc.Statistics(c.Context(), userID)
		if err != nil {
			return respond.Internal(c, "Error retrieving user statistics", err)
		}
		return respond.OK(c, "User statistics retrieved successfully", statistics)
	})

	r.Post("/favorites/destinations/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		result, err := svc.ToggleFavoriteDestination(c.Context(), userID, c.Params("id"))
		if err != nil {
			return respond.Internal(c, "Error toggling favorite destination", err)
		}
		return respond.OK(c, "Favorite destination updated successfully", result)
	})

	r.Post("/favorites/routes/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		result, err := svc.ToggleFavoriteRoute(c.Context(), userID, c.Params("id"))
		if err != nil {
			return respond.Internal(c, "Error toggling favorite route", err)
		}
		return respond.OK(c, "Favorite route updated successfully", result)
	})

	r.Put("/routes/:id/status", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		var req struct {
			Status RouteStatus `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		err := svc.UpdateRouteStatus(c.Context(), userID, c.Params("id"), req.Status)
		if errors.Is(err, ErrInvalidStatus) {
			return respond.BadRequest(c, err.Error())
		}
		if err != nil {
			return respond.Internal(c, "Error updating route status", err)
		}
		return respond.OK(c, "Route status updated successfully", nil)
	})
}
