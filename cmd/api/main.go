package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/subro/blog-api/internal/api/http"
	"github.com/subro/blog-api/internal/api/http/handlers"
	"github.com/subro/blog-api/internal/auth"
	"github.com/subro/blog-api/internal/cache"
	"github.com/subro/blog-api/internal/config"
	"github.com/subro/blog-api/internal/observability"
	"github.com/subro/blog-api/internal/persistence"
	"github.com/subro/blog-api/internal/repository"
	"github.com/subro/blog-api/internal/service"
	"github.com/subro/blog-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	blobs, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	postCache := cache.NewPostCache(redis.Client, cfg.Redis.PostCacheTTL(), logger)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	postService := service.NewPostService(service.PostDependencies{
		PostRepo:     postRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		Blobs:        blobs,
		Cache:        postCache,
	})
	categoryService := service.NewCategoryService(categoryRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, postCache)

	gate := auth.NewGate(authService.TokenCodec(), userRepo, auth.DefaultPolicy(), logger, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService),
		Users:      handlers.NewUsersHandler(userService),
		Posts:      handlers.NewPostsHandler(postService),
		Categories: handlers.NewCategoriesHandler(categoryService),
		Comments:   handlers.NewCommentsHandler(commentService),
		Gate:       gate,
		Registry:   registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
