package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "imagify/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"imagify/internal/auth"
	"imagify/internal/cache"
	"imagify/internal/config"
	"imagify/internal/db"
	"imagify/internal/handler"
	"imagify/internal/model"
	"imagify/internal/provider"
	"imagify/internal/repository"
	"imagify/internal/router"
	"imagify/internal/service"
)

// @title Imagify API
// @version 1.0
// @description Credit-gated AI image generation and media transformation API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Generation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	generationRepo := repository.NewGenerationRepository(gormDB)

	// Outbound providers; constructed once here and injected, never held in
	// package-level state.
	generator := provider.NewGenerationClient(cfg.GenerationAPIURL, cfg.GenerationAPIKey)
	media := provider.NewMediaClient(cfg.MediaBaseURL, cfg.MediaCloudName)

	// Auth and services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	creditService := service.NewCreditService(userRepo, cacheClient)
	historyService := service.NewHistoryService(generationRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, creditService)
	generationService := service.NewGenerationService(generationRepo, creditService, historyService, generator)
	transformService := service.NewTransformService(media)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(creditService, userService)
	imageHandler := handler.NewImageHandler(generationService, historyService)
	mediaHandler := handler.NewMediaHandler(transformService)

	router.Register(
		e,
		cfg,
		jwtService,
		creditService,
		authHandler,
		userHandler,
		imageHandler,
		mediaHandler,
	)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	// Wait for a shutdown signal and drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
