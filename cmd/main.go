package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"optimistify/internal/config"
	"optimistify/internal/handler"
	"optimistify/internal/model"
	"optimistify/internal/router"
	"optimistify/internal/service"
	"optimistify/pkg/logger"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	ctx := context.Background()

	// A missing key is reported per request, not at boot.
	var chatModel einoModel.BaseChatModel
	if cfg.LLM.APIKey == "" {
		logger.Warnf("no API key configured for provider %q (set %s); reframe requests will fail",
			cfg.LLM.Provider, config.CredentialEnv(cfg.LLM.Provider))
	} else {
		chatModel, err = model.NewChatModel(ctx, cfg.LLM, cfg.Reframe.Model)
		if err != nil {
			logger.Errorf("Failed to create chat model: %v", err)
		}
	}

	reframeService := service.NewReframeService(cfg, chatModel)
	logger.Infof("Using %s", reframeService)

	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(cfg, handler.NewReframeHandler(reframeService))

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("Server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
