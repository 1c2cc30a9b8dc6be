package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidstream/infrastructure/cache"
	youtubeclient "vidstream/infrastructure/clients/youtube"
	"vidstream/infrastructure/configuration"
	"vidstream/infrastructure/logger"
	"vidstream/infrastructure/persistence"
	httpHandler "vidstream/interfaces/http"
	"vidstream/server"
	"vidstream/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App
	if app.SecretKey == "" {
		logger.GetLogger().Error("SECRET_KEY is not configured - refusing to start")
		os.Exit(1)
	}

	mongoClient, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB initialization failed")
		os.Exit(1)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	db := mongoClient.Database(configuration.C.Database.Mongo.Name)
	if err := persistence.EnsureIndexes(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed ensuring indexes")
		os.Exit(1)
	}

	// Redis is optional: without it the metadata cache degrades to a no-op.
	var metadataCache = cache.NewMetadataCache(nil)
	if configuration.C.RedisClient.Host != "" {
		redisClient, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
			configuration.C.RedisClient.Username,
			configuration.C.RedisClient.Password,
		)
		if err == nil {
			metadataCache = cache.NewMetadataCache(redisClient)
			logger.GetLogger().Info("Redis client initialized successfully.")
		}
	} else {
		logger.GetLogger().Info("Redis not configured - metadata caching disabled")
	}

	userRepository := persistence.NewUserRepository(db)
	videoRepository := persistence.NewVideoRepository(db)
	historyRepository := persistence.NewHistoryRepository(db)

	// YouTube lookups are optional too; history saves fall back to
	// synthesized defaults when the client is absent.
	ytMetadataClient, err := youtubeclient.NewMetadataClient(ctx, configuration.C.YouTube.APIKey)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("YouTube metadata client not available - history will use fallback metadata")
		ytMetadataClient = nil
	}

	userUsecase := usecase.NewUserUsecase(userRepository, videoRepository, app.SecretKey)
	videoUsecase := usecase.NewVideoUsecase(videoRepository)
	historyUsecase := usecase.NewHistoryUsecase(historyRepository, videoRepository, ytMetadataClient, metadataCache)

	userHandler := httpHandler.NewUserHandler(userUsecase, app.CookieSecure)
	videoHandler := httpHandler.NewVideoHandler(videoUsecase)
	historyHandler := httpHandler.NewHistoryHandler(historyUsecase)

	router := server.InitiateRouter(
		userHandler,
		videoHandler,
		historyHandler,
		userRepository,
		app.SecretKey,
		configuration.C.Cors.AllowedOrigins,
	)

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	_ = mongoClient.Disconnect(shutdownCtx)

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
