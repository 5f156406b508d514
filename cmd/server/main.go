package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"pressroom/internal/api"
	"pressroom/internal/api/handler"
	"pressroom/internal/app/service"
	"pressroom/internal/common/security"
	"pressroom/internal/domain/repository"
	"pressroom/internal/platform/cache"
	"pressroom/internal/platform/config"
	"pressroom/internal/platform/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Configuration. A missing JWT secret is fatal here, on purpose.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// 2. Credential service
	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)

	// 3. Database handle. Opened lazily on first use, then reused.
	dbHandle := database.NewHandle(cfg.DBConnStr)
	defer dbHandle.Close()

	// 4. Optional post cache
	var postCache *cache.PostCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		postCache = cache.NewPostCache(rdb, cfg.PostCacheTTL)
		logger.Info("post cache enabled", "addr", cfg.RedisAddr)
	}

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(dbHandle)
	postRepo := repository.NewPgPostRepository(dbHandle)

	// 6. Services
	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo, postCache)

	// 7. Handlers + dispatcher
	authHandler := handler.NewAuthHandler(authService, tokens)
	postHandler := handler.NewPostHandler(postService, tokens)

	dispatcher := api.NewDispatcher(api.RouteSet{
		Register:   authHandler.Register,
		Login:      authHandler.Login,
		Profile:    authHandler.Profile,
		ListPosts:  postHandler.List,
		CreatePost: postHandler.Create,
		GetPost:    postHandler.Get,
		UpdatePost: postHandler.Update,
		DeletePost: postHandler.Delete,
	}, logger)

	// 8. HTTP host: chi carries the substrate middleware, the dispatcher
	// does the routing.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Handle("/*", dispatcher)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped gracefully")
}
