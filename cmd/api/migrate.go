package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"sba-portal/internal/adapter/repository/gormstore"
)

var migrateCommand = &cli.Command{
	Name:   "migrate",
	Usage:  "Create or update the portal tables",
	Action: migrate,
}

func migrate(cCtx *cli.Context) error {
	cfg, logger, err := loadConfig(false)
	if err != nil {
		return err
	}
	gdb, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	if err := gormstore.AutoMigrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.WithField("tables", len(gormstore.Models())).Info("migration complete")
	return nil
}
