package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"fitness-intake-backend/internal/database"
)

var setupDatabaseCommand = &cli.Command{
	Name:  "setup-database",
	Usage: "Print the schema SQL for manual application in the Supabase SQL editor",
	Action: func(c *cli.Context) error {
		sql, err := database.SetupSQL()
		if err != nil {
			return fmt.Errorf("failed to assemble schema SQL: %w", err)
		}

		fmt.Println("-- Run the following in the Supabase SQL editor,")
		fmt.Println("-- or start the server with DATABASE_URL set to apply it automatically.")
		fmt.Println()
		fmt.Print(sql)
		return nil
	},
}
