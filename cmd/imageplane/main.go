// Package main is the entry point for the image plane viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/app"
	"github.com/Faultbox/imageplane/internal/config"
	"github.com/Faultbox/imageplane/internal/logger"
)

// startupWait bounds how long the first frame waits for plane images.
const startupWait = 3 * time.Second

func main() {
	config.ParseFlags()

	cfg, cfgPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Image Plane ===", zap.String("config", cfgPath))
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg, cfgPath)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer a.Close()

	// Planes still loading after the wait activate from the frame loop.
	ctx, cancel := context.WithTimeout(context.Background(), startupWait)
	if err := a.Await(ctx); err != nil {
		logger.Warn("images still loading", zap.Error(err))
	}
	cancel()

	if err := a.Run(); err != nil {
		logger.Error("app error", zap.Error(err))
		a.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}
