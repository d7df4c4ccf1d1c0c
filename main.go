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

	"obehod_backend/internals/configs"
	database "obehod_backend/internals/databases"
	wizardService "obehod_backend/internals/features/hod/clo_wizard/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
	middlewares "obehod_backend/internals/middlewares"
	routes "obehod_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	if configs.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	client, err := hodapi.New(hodapi.Config{
		BaseURL: configs.HodAPIBaseURL,
		Token:   configs.HodAPIToken,
		Timeout: configs.HodAPITimeout,
	})
	if err != nil {
		log.Fatalf("❌ HOD API client: %v", err)
	}

	// 🧙 wizard sessions: postgres when configured, memory otherwise
	var (
		store  wizardService.Store = wizardService.NewMemoryStore()
		dbPing func() error
	)
	if configs.WizardStore == configs.WizardStorePostgres {
		if err := database.ConnectDB(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		database.TunePool()
		if err := database.Migrate(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		store = wizardService.NewGormStore(database.DB)
		dbPing = database.Ping
	}
	wizards := wizardService.NewService(client.CLOs, store, configs.WizardTTL)

	reaper, err := wizardService.StartCleanupCron(wizards, configs.WizardCleanup)
	if err != nil {
		log.Fatalf("❌ wizard cleanup schedule: %v", err)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, configs.CORSOrigins, configs.HodAPITimeout+5*time.Second)

	routes.SetupRoutes(app, routes.Deps{
		Client:    client,
		Wizards:   wizards,
		JWTSecret: configs.JWTSecret,
		DBPing:    dbPing,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = configs.HodAPITimeout + 15*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop accepting, let the reaper finish, close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-reaper.Stop().Done()
	database.Close()
}
