package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sba-portal/internal/config"
	"sba-portal/internal/infrastructure/db"
	"sba-portal/internal/infrastructure/logging"
)

// loadConfig reads and validates the environment and builds the logger.
func loadConfig(serve bool) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	validate := cfg.Validate
	if serve {
		validate = cfg.ValidateServe
	}
	if err := validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	c, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return c, nil
}

func openDB(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}
	return db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.WithLogger(logger), db.WithLogLevel(level))
}
