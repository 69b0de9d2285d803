package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subro/blog-api/internal/api/http/handlers"
	"github.com/subro/blog-api/internal/auth"
	"github.com/subro/blog-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Users      *handlers.UsersHandler
	Posts      *handlers.PostsHandler
	Categories *handlers.CategoriesHandler
	Comments   *handlers.CommentsHandler
	Gate       *auth.Gate
	Registry   *prometheus.Registry
}

// RegisterRoutes wires HTTP routes. The gate runs on every request; which of
// them demand an authenticated principal is the policy table's decision, so
// the registrations below carry no per-route auth handlers except role guards.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := api.Group("/users")
	users.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.Create)
	users.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.List)
	users.Get("/:userId", cfg.Users.Get)
	users.Put("/:userId", cfg.Users.Update)
	users.Delete("/:userId", cfg.Users.Delete)
	users.Get("/:userId/posts", cfg.Posts.ListByAuthor)
	users.Post("/:userId/categories/:categoryId/posts", cfg.Posts.Create)

	categories := api.Group("/categories")
	categories.Post("/", cfg.Categories.Create)
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:categoryId", cfg.Categories.Get)
	categories.Put("/:categoryId", cfg.Categories.Update)
	categories.Delete("/:categoryId", cfg.Categories.Delete)
	categories.Get("/:categoryId/posts", cfg.Posts.ListByCategory)

	posts := api.Group("/posts")
	posts.Get("/", cfg.Posts.List)
	posts.Get("/search/:keywords", cfg.Posts.Search)
	posts.Get("/images/:imageName", cfg.Posts.DownloadImage)
	posts.Get("/:postId", cfg.Posts.Get)
	posts.Put("/:postId", cfg.Posts.Update)
	posts.Delete("/:postId", cfg.Posts.Delete)
	posts.Post("/:postId/image", cfg.Posts.UploadImage)
	posts.Get("/:postId/comments", cfg.Comments.ListByPost)
	posts.Post("/:postId/comments", cfg.Comments.Create)

	api.Delete("/comments/:commentId", cfg.Comments.Delete)
}
