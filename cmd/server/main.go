package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/farhanadi/resume-matcher/internal/config"
	"github.com/farhanadi/resume-matcher/internal/domain/fiber/handler"
	appLogger "github.com/farhanadi/resume-matcher/internal/logger"
	"github.com/farhanadi/resume-matcher/internal/matcher"
	"github.com/farhanadi/resume-matcher/internal/middleware"
	"github.com/farhanadi/resume-matcher/internal/model"
	"github.com/farhanadi/resume-matcher/internal/repository"
	"github.com/farhanadi/resume-matcher/internal/service"
	"github.com/farhanadi/resume-matcher/internal/usecase"
	"github.com/farhanadi/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	cfg := config.Load()
	util.Production = cfg.App.Env == "production"

	zlog, err := appLogger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Could not init logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	db := connectDB(cfg, zlog)

	embedder, err := newEmbedder(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("could not init embedder", zap.Error(err))
	}

	engine := matcher.NewEngine(embedder, zlog)
	jobRepo := repository.NewJobRepository(db)
	uc := usecase.NewMatchUsecase(jobRepo, engine, zlog)

	// Warm up in the background so startup is not blocked by the embedding
	// backend. The health endpoint reports degraded until it succeeds.
	go func() {
		warmupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := uc.Warmup(warmupCtx); err != nil {
			zlog.Warn("initial warmup failed", zap.Error(err))
		}
	}()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !util.Production,
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return util.Production
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	h := handler.NewMatchHandler(uc, cfg.App.Name, cfg.App.Env)
	h.RegisterRoutes(app)

	zlog.Info("server starting", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
	if err := app.Listen(cfg.App.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func newEmbedder(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (matcher.Embedder, error) {
	switch cfg.Embedder.Provider {
	case config.ProviderGemini:
		return service.NewGeminiService(ctx, &cfg.Embedder, zlog)
	case config.ProviderLocal:
		return service.NewLocalEmbedderService(&cfg.Embedder, zlog), nil
	default:
		return nil, fmt.Errorf("unknown embedder provider %q", cfg.Embedder.Provider)
	}
}

func connectDB(cfg *config.Config, zlog *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if util.Production {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	} else {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.AutoMigrate(&model.Job{}); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
