package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/namishh/bubble/auth"
	"github.com/namishh/bubble/config"
	"github.com/namishh/bubble/handlers"
	"github.com/namishh/bubble/mailer"
	"github.com/namishh/bubble/routes"
	"github.com/namishh/bubble/session"
	"github.com/namishh/bubble/store"
	"github.com/namishh/bubble/views"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := config.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	cfg := config.Load()

	db, err := store.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	logger.Info("connected to database", zap.String("name", cfg.Database.Name))

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	sessions := session.NewManager(cfg.Session)
	tokens := auth.NewTokenCodec(cfg.App.SecretKey, cfg.Token)

	dispatcher := mailer.NewDispatcher(mailer.NewClient(cfg.SMTP), logger)
	defer dispatcher.Close()

	app := fiber.New(fiber.Config{
		Views: views.New(),
	})

	routes.Register(app, routes.Handlers{
		Pages:    handlers.NewPageHandler(sessions),
		Auth:     handlers.NewAuthHandler(users, sessions, tokens, dispatcher, logger, cfg.App.BaseURL),
		Profile:  handlers.NewProfileHandler(users, sessions, logger),
		Posts:    handlers.NewPostHandler(posts, sessions, logger),
		Sessions: sessions,
		Users:    users,
	})

	logger.Info("server listening", zap.String("addr", cfg.App.Addr))
	if err := app.Listen(cfg.App.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
