package community

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
		communities, err := svc.Popular(c.Context(), limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving popular communities", err)
		}
		if len(communities) == 0 {
			return respond.NotFound(c, "No popular communities found")
		}
		return respond.OK(c, "Popular communities retrieved successfully", communities)
	})

	r.Get("/recommendations", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "5"))
		communities, err := svc.Recommendations(c.Context(), userID, limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving community recommendations", err)
		}
		return respond.OK(c, "Community recommendations retrieved successfully", communities)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		community, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Community not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching community", err)
		}
		return respond.OK(c, "Community fetched successfully", community)
	})

	r.Get("/:id/members", func(c *fiber.Ctx) error {
		members, err := svc.Members(c.Context(), c.Params("id"))
		if err != nil {
			return respond.Internal(c, "Error fetching community members", err)
		}
		return respond.OK(c, "Community members fetched successfully", members)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Community
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		if req.Name == "" {
			return respond.BadRequest(c, "name required")
		}
		req.UserID, _ = c.Locals("user_id").(string)
		community, err := svc.Create(c.Context(), req)
		if err != nil {
			return respond.Internal(c, "Error creating community", err)
		}
		return respond.Created(c, "Community created successfully", community)
	})

	r.Post("/:id/join", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		err := svc.Join(c.Context(), c.Params("id"), userID)
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Community not found")
		}
		if err != nil {
			return respond.Internal(c, "Error joining community", err)
		}
		return respond.OK(c, "Joined community successfully", nil)
	})

	r.Delete("/:id/join", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.Leave(c.Context(), c.Params("id"), userID); err != nil {
			return respond.Internal(c, "Error leaving community", err)
		}
		return respond.OK(c, "Left community successfully", nil)
	})
}
