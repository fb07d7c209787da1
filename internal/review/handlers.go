package review

import (
	"errors"

	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:target/:id", func(c *fiber.Ctx) error {
		reviews, err := svc.ListFor(c.Context(), Target(c.Params("target")), c.Params("id"))
		if errors.Is(err, ErrUnknownTarget) {
			return respond.BadRequest(c, err.Error())
		}
		if err != nil {
			return respond.Internal(c, "Error fetching reviews", err)
		}
		return respond.OK(c, "Reviews fetched successfully", reviews)
	})

	r.Post("/:target/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Review
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		req.Target = Target(c.Params("target"))
		req.TargetID = c.Params("id")
		req.UserID, _ = c.Locals("user_id").(string)

		created, err := svc.Create(c.Context(), req)
		if errors.Is(err, ErrInvalidRating) || errors.Is(err, ErrUnknownTarget) {
			return respond.BadRequest(c, err.Error())
		}
		if err != nil {
			return respond.Internal(c, "Error creating review", err)
		}
		return respond.Created(c, "Review created successfully", created)
	})
}
