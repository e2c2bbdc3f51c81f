package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	gosync "sync"
	"syscall"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/olliebm/boards-sync/api"
	"github.com/olliebm/boards-sync/integrations"
	"github.com/olliebm/boards-sync/internal/config"
	"github.com/olliebm/boards-sync/internal/sync"
)

func main() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "debug"
	}
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := logConfig.Build()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Error loading configuration", zap.Error(err))
	}

	routes := sync.DefaultRoutes()
	if len(cfg.Routes) > 0 {
		rules := make([]sync.Route, len(cfg.Routes))
		for i, r := range cfg.Routes {
			rules[i] = sync.Route{Repository: r.Repository, TeamID: r.TeamID, BoardName: r.BoardName}
		}
		// The first configured rule doubles as the fallback for unknown
		// repositories.
		routes = sync.NewRouteTable(rules, sync.Route{TeamID: rules[0].TeamID, BoardName: rules[0].BoardName})
		zap.L().Info("Using configured repository routes", zap.Int("count", len(rules)))
	}

	boardClient := integrations.NewFocalboardClient(cfg.SiteURL, cfg.AccessToken)
	syncer := sync.NewSyncer(boardClient, routes)

	apiHandler := &api.Handler{
		Syncer:  syncer,
		SiteURL: cfg.SiteURL,
		NewBotClient: func(siteURL, token string) api.BotPoster {
			return integrations.NewMattermostClient(siteURL, token)
		},
	}
	appHandler := &api.AppHandler{
		RootURL: fmt.Sprintf("http://localhost:%s", cfg.Port),
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.POST("/event-listener", apiHandler.EventListenerHandler)
	router.HEAD("/event-listener", apiHandler.EventListenerHandler)
	router.GET("/manifest.json", appHandler.ManifestHandler)
	router.POST("/bindings", appHandler.BindingsHandler)
	router.POST("/submit", apiHandler.SubmitHandler)
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.Static("/static", "./static")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	zap.L().Info("Starting server", zap.String("port", cfg.Port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once gosync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}
		close(done)
	}

	go func() {
		sig := <-sigCh
		once.Do(func() {
			cleanup(sig.String())
		})

		// if a second signal is caught, exit immediately
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	<-done
	zap.L().Info("Exiting...")
}
