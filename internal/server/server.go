package server

import (
	"github.com/fer-gc05/AventuraLocalApi/internal/auth"
	"github.com/fer-gc05/AventuraLocalApi/internal/cache"
	"github.com/fer-gc05/AventuraLocalApi/internal/category"
	"github.com/fer-gc05/AventuraLocalApi/internal/community"
	"github.com/fer-gc05/AventuraLocalApi/internal/config"
	"github.com/fer-gc05/AventuraLocalApi/internal/destination"
	"github.com/fer-gc05/AventuraLocalApi/internal/event"
	"github.com/fer-gc05/AventuraLocalApi/internal/live"
	"github.com/fer-gc05/AventuraLocalApi/internal/review"
	"github.com/fer-gc05/AventuraLocalApi/internal/route"
	"github.com/fer-gc05/AventuraLocalApi/internal/tour"
	"github.com/fer-gc05/AventuraLocalApi/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Cache *cache.Cache
	Live  *live.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Cache: cache.New(redisClient),
		Live:  live.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	destination.RegisterRoutes(s.App.Group("/destinations"), destination.NewService(s.DB, s.Cache), jwtMiddleware)
	event.RegisterRoutes(s.App.Group("/events"), event.NewService(s.DB, s.Cache, s.Live), jwtMiddleware)
	community.RegisterRoutes(s.App.Group("/communities"), community.NewService(s.DB, s.Cache), jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/routes"), route.NewService(s.DB, s.Cache), jwtMiddleware)
	category.RegisterRoutes(s.App.Group("/categories"), category.NewService(s.DB, s.Cache), jwtMiddleware)
	review.RegisterRoutes(s.App.Group("/reviews"), review.NewService(s.DB, s.Cache), jwtMiddleware)
	tour.RegisterRoutes(s.App.Group("/tours"), tour.NewService(s.DB), jwtMiddleware)
	user.RegisterRoutes(s.App.Group("/users"), user.NewService(s.DB, s.Cache), jwtMiddleware)
	live.RegisterRoutes(s.App.Group("/live"), s.Live)
}
