package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacebook/config"
	"spacebook/database"
	"spacebook/database/repository"
	"spacebook/middleware"
	"spacebook/routes"
	"spacebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	initFirebase(logger)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, utils.RedisClients(), database.MongoClient)

	repos := repository.NewMongoRepositories()
	if err := ensureIndexes(context.Background(), repos); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}
	a := &app{
		logger:   logger,
		repos:    repos,
		notifier: newNotifier(repos, logger),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, a.handlerBundle())

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr),
		zap.String("notificationMode", config.AppConfig.NotificationMode),
		zap.String("authProvider", config.AppConfig.AuthProvider))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	a.close(ctx)
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}
