// Package main is the entry point for the PCD annotator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/maralbahari/pcd-segmentation-interface/internal/app"
	"github.com/maralbahari/pcd-segmentation-interface/internal/config"
	"github.com/maralbahari/pcd-segmentation-interface/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== PCD Annotator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create application", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	a.Run()

	logger.Info("annotator closed normally")
}
