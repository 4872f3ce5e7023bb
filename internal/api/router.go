package api

import (
	"errors"
	"strings"
	"time"

	"vitrifiye-studio/docs"
	"vitrifiye-studio/internal/api/handlers"
	"vitrifiye-studio/pkg/auth"
	"vitrifiye-studio/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Product       *handlers.ProductHandler
	Quiz          *handlers.QuizHandler
	Configuration *handlers.ConfigurationHandler
	Profile       *handlers.ProfileHandler
}

// RouterConfig carries the transport settings. RequestLogging enables the
// fiber access log.
type RouterConfig struct {
	CORSOrigins    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestLogging bool
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, cfg RouterConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			} else {
				appLogger.Error("Unhandled request error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	origins := cfg.CORSOrigins
	if strings.TrimSpace(origins) == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	if cfg.RequestLogging {
		app.Use(logger.New())
	}

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(jwtManager, appLogger)
	optionalAuth := middleware.OptionalAuth(jwtManager, appLogger)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	products := v1.Group("/products")
	products.Get("", h.Product.List)
	products.Get("/search", h.Product.Search)
	products.Get("/category/:category", h.Product.ByCategory)
	products.Get("/:id", h.Product.Get)

	quiz := v1.Group("/quiz")
	quiz.Get("/questions", h.Quiz.Questions)
	quiz.Post("/submit", optionalAuth, h.Quiz.Submit)
	quiz.Get("/results", requireAuth, h.Quiz.ListMine)
	quiz.Get("/results/:id", h.Quiz.GetResult)

	configurations := v1.Group("/configurations")
	configurations.Post("", optionalAuth, h.Configuration.Create)
	configurations.Get("/public", h.Configuration.ListPublic)
	configurations.Get("/mine", requireAuth, h.Configuration.ListMine)
	configurations.Get("/:id", h.Configuration.Get)
	configurations.Put("/:id", requireAuth, h.Configuration.Update)
	configurations.Delete("/:id", requireAuth, h.Configuration.Delete)

	v1.Get("/profile", requireAuth, h.Profile.Get)

	return app
}
