package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "fitctl",
		Usage: "Maintenance tooling for the fitness intake backend",
		Commands: []*cli.Command{
			setupAdminCommand,
			setupDatabaseCommand,
			smokeTestCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}
