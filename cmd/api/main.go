package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "sba-portal",
		Usage: "SBA loan application portal API",
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			checklistCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
