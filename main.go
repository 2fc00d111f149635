package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"skillshots_backend/internals/configs"
	database "skillshots_backend/internals/databases"
	genaiService "skillshots_backend/internals/features/genai/service"
	progressService "skillshots_backend/internals/features/progress/service"
	quizService "skillshots_backend/internals/features/quiz/service"
	middlewares "skillshots_backend/internals/middlewares"
	routes "skillshots_backend/internals/route"
	seeds "skillshots_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             10 * 1024 * 1024, // cover uploads
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// AI calls can be slow; everything else finishes well inside this.
		ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// DB connect + pool + schema
	database.ConnectDB()
	database.TunePool()
	database.Migrate()

	// Bootstrap: groups, settings, default creator, starter content
	bootstrapCfg := configs.LoadBootstrapConfig()
	if err := seeds.RunAllSeeds(database.DB, bootstrapCfg); err != nil {
		log.Fatalf("❌ Bootstrap failed: %v", err)
	}

	// AI boundary; nil when no API key so the rest of the app still runs
	genai, err := genaiService.New(configs.LoadGenAIConfig())
	if err != nil {
		log.Printf("⚠️  GenAI disabled: %v", err)
		genai = nil
	}

	attempts := quizService.NewAttemptStore()
	progress := progressService.NewProgressService(database.DB, attempts)

	routes.SetupRoutes(app, database.DB, routes.Deps{
		GenAI:    genai,
		Attempts: attempts,
		Progress: progress,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 90 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
