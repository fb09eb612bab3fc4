// File: oneday/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oneday/config"
	"oneday/cron"
	"oneday/database"
	userRepoPkg "oneday/database/repository/user"
	"oneday/handlers"
	"oneday/middleware"
	"oneday/routes"
	"oneday/services/catalog"
	"oneday/services/notification"
	"oneday/services/session"
	"oneday/services/user"
	"oneday/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := database.InitDB(rootCtx); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	if err := utils.InitRedis(); err != nil {
		logger.Fatal("main: redis unavailable", zap.Error(err))
	}
	if err := utils.FirebaseInit(rootCtx); err != nil {
		logger.Fatal("main: firebase init failed", zap.Error(err))
	}
	utils.StartHealthMonitor(rootCtx, time.Minute, utils.RedisClients(), database.MongoClient)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(database.MongoClient, config.AppConfig.DatabaseName)

	// notifications.
	var sender notification.Sender
	if utils.FCMClient != nil {
		sender = utils.FCMClient
	}
	notificationService, err := notification.NewDefaultNotificationService(userRepo, sender, logger)
	if err != nil {
		logger.Fatal("main: notification service", zap.Error(err))
	}

	// queue.
	queueOpt := cron.RedisOpt()
	enqueuer := cron.NewEnqueuer(queueOpt, logger)

	deps := session.Deps{
		Catalog:   catalog.New(),
		Notifier:  notificationService,
		Reminders: enqueuer,
		Logger:    logger,
	}
	if config.AppConfig.ChatReplyMode == "queue" {
		deps.Replies = enqueuer
	}
	sessions := session.NewManager(userRepo, deps)

	worker := cron.NewWorker(queueOpt, sessions, notificationService, logger)
	worker.Start()

	tokens := utils.RedisTokenCache{Client: utils.AuthCacheClient}
	userService := &user.DefaultUserService{
		Repo:            userRepo,
		Sessions:        sessions,
		Tokens:          tokens,
		Verifier:        utils.NewVerifier(utils.OTPCacheClient, config.AppConfig.VerificationCodeTTL, nil),
		SessionTTL:      config.AppConfig.SessionTTL,
		NicknameTimeout: config.AppConfig.NicknameCheckTimeout,
		Logger:          logger,
	}

	handlerBundle := &handlers.HandlerBundle{
		Users:   userService,
		Catalog: deps.Catalog,
		Tokens:  tokens,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle, sessions, config.AppConfig.MaxRequestsPerMin)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("chatReplyMode", config.AppConfig.ChatReplyMode))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	sessions.Close()
	worker.Shutdown()
	if err := enqueuer.Close(); err != nil {
		logger.Warn("main: closing queue client", zap.Error(err))
	}
	for _, c := range utils.RedisClients() {
		_ = c.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: closing database", zap.Error(err))
	}
	stop()

	logger.Info("main: server stopped gracefully")
}
