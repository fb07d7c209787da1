package event

import (
	"errors"
	"strconv"
	"time"

	"github.com/fer-gc05/AventuraLocalApi/internal/auth"
	"github.com/fer-gc05/AventuraLocalApi/internal/shared/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		result, err := svc.List(c.Context(), ListFilter{
			Title:         c.Query("title"),
			CategoryID:    c.Query("category_id"),
			DestinationID: c.Query("destination_id"),
			Page:          page,
		})
		if err != nil {
			return respond.Internal(c, "Error fetching events", err)
		}
		if len(result.Items) == 0 {
			return respond.NotFound(c, "No events found")
		}
		return respond.OK(c, "Events fetched successfully", result)
	})

	r.Get("/popular", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		events, err := svc.Popular(c.Context(), limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving popular events", err)
		}
		if len(events) == 0 {
			return respond.NotFound(c, "No popular events found")
		}
		return respond.OK(c, "Popular events retrieved successfully", events)
	})

	r.Get("/upcoming", func(c *fiber.Ctx) error {
		days, _ := strconv.Atoi(c.Query("days", "7"))
		events, err := svc.Upcoming(c.Context(), days)
		if err != nil {
			return respond.Internal(c, "Error retrieving upcoming events", err)
		}
		if len(events) == 0 {
			return respond.NotFound(c, "No upcoming events found")
		}
		return respond.OK(c, "Upcoming events retrieved successfully", events)
	})

	r.Get("/nearby", authMiddleware, func(c *fiber.Ctx) error {
		radius, _ := strconv.ParseFloat(c.Query("radius"), 64)
		result, err := svc.Nearby(c.Context(), NearbyParams{
			EventID:    c.Query("event_id"),
			RadiusKm:   radius,
			SearchTerm: c.Query("searchTerm"),
		})
		if errors.Is(err, ErrInvalidRadius) {
			return respond.BadRequest(c, err.Error())
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Event not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching nearby events", err)
		}
		return respond.OK(c, "Nearby events fetched successfully", result)
	})

	r.Get("/recommendations", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "5"))
		events, err := svc.Recommendations(c.Context(), userID, limit)
		if err != nil {
			return respond.Internal(c, "Error retrieving event recommendations", err)
		}
		return respond.OK(c, "Event recommendations retrieved successfully", events)
	})

	r.Get("/calendar", func(c *fiber.Ctx) error {
		now := time.Now()
		year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
		month, _ := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
		if month < 1 || month > 12 {
			return respond.BadRequest(c, "month must be between 1 and 12")
		}
		days, err := svc.Calendar(c.Context(), year, month)
		if err != nil {
			return respond.Internal(c, "Error retrieving event calendar", err)
		}
		return respond.OK(c, "Event calendar retrieved successfully", days)
	})

	r.Get("/trashed", authMiddleware, auth.RequireRole(auth.RoleAdmin), func(c *fiber.Ctx) error {
		events, err := svc.Trashed(c.Context())
		if err != nil {
			return respond.Internal(c, "Error retrieving trashed events", err)
		}
		if len(events) == 0 {
			return respond.NotFound(c, "No trashed events found")
		}
		return respond.OK(c, "Trashed events retrieved successfully", events)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		ev, err := svc.Get(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Event not found")
		}
		if err != nil {
			return respond.Internal(c, "Error fetching event", err)
		}
		return respond.OK(c, "Event fetched successfully", ev)
	})

	r.Get("/:id/statistics", authMiddleware, func(c *fiber.Ctx) error {
		statistics, err := svc.Statistics(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Event not found")
		}
		if err != nil {
			return respond.Internal(c, "Error retrieving event statistics", err)
		}
		return respond.OK(c, "Event statistics retrieved successfully", statistics)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Event
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		if req.Title == "" || req.StartDatetime.IsZero() {
			return respond.BadRequest(c, "title and start_datetime required")
		}
		req.UserID, _ = c.Locals("user_id").(string)
		ev, err := svc.Create(c.Context(), req)
		if err != nil {
			return respond.Internal(c, "Error creating event", err)
		}
		return respond.Created(c, "Event created successfully", ev)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Event
		if err := c.BodyParser(&req); err != nil {
			return respond.BadRequest(c, err.Error())
		}
		ev, err := svc.Update(c.Context(), c.Params("id"), req)
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Event not found")
		}
		if err != nil {
			return respond.Internal(c, "Error updating event", err)
		}
		return respond.OK(c, "Event updated successfully", ev)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return respond.Internal(c, "Error deleting event", err)
		}
		return respond.OK(c, "Event deleted successfully", nil)
	})

	r.Post("/:id/restore", authMiddleware, auth.RequireRole(auth.RoleAdmin), func(c *fiber.Ctx) error {
		ev, err := svc.Restore(c.Context(), c.Params("id"))
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Event not found")
		}
		if err != nil {
			return respond.Internal(c, "Error restoring event", err)
		}
		return respond.OK(c, "Event restored successfully", ev)
	})

	r.Post("/:id/attend", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		attendees, err := svc.Attend(c.Context(), c.Params("id"), userID)
		if errors.Is(err, ErrEventFull) {
			return respond.BadRequest(c, err.Error())
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return respond.NotFound(c, "Event not found")
		}
		if err != nil {
			return respond.Internal(c, "Error registering attendance", err)
		}
		return respond.OK(c, "Attendance registered successfully", fiber.Map{"attendees": attendees})
	})

	r.Delete("/:id/attend", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		attendees, err := svc.CancelAttendance(c.Context(), c.Params("id"), userID)
		if err != nil {
			return respond.Internal(c, "Error cancelling attendance", err)
		}
		return respond.OK(c, "Attendance cancelled successfully", fiber.Map{"attendees": attendees})
	})
}
