package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"fitness-intake-backend/internal/config"
	"fitness-intake-backend/internal/supabase"
)

var setupAdminCommand = &cli.Command{
	Name:  "setup-admin",
	Usage: "Create or update the admin account from ADMIN_EMAIL and ADMIN_PASSWORD",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("set SUPABASE_SERVICE_ROLE_KEY")
		}
		if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			return fmt.Errorf("set ADMIN_EMAIL and ADMIN_PASSWORD")
		}

		ctx := context.Background()
		authClient := supabase.NewAuthClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey)

		user, err := authClient.AdminCreateUser(ctx, cfg.AdminEmail, cfg.AdminPassword)
		switch {
		case err == nil:
			logrus.WithField("email", cfg.AdminEmail).Info("admin user created")
		case supabase.IsEmailExists(err):
			// Idempotent rerun: find the existing user and reset the password.
			user, err = findUserByEmail(ctx, authClient, cfg.AdminEmail)
			if err != nil {
				return err
			}
			if err := authClient.AdminUpdatePassword(ctx, user.ID, cfg.AdminPassword); err != nil {
				return fmt.Errorf("failed to update admin password: %w", err)
			}
			logrus.WithField("email", cfg.AdminEmail).Info("admin user already exists, password updated")
		default:
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		if cfg.DatabaseURL == "" {
			// No direct connection: go through PostgREST with the service
			// role instead.
			return upsertProfileREST(cfg, user)
		}

		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbClient.Close()

		if err := dbClient.UpsertAdminProfile(ctx, user.ID, user.Email); err != nil {
			return fmt.Errorf("failed to upsert admin profile: %w", err)
		}

		logrus.Info("admin profile upserted")
		return nil
	},
}

func upsertProfileREST(cfg *cliConfig, user *supabase.AuthUser) error {
	client, err := supabase.NewServiceClient(&config.Config{
		SupabaseURL:            cfg.SupabaseURL,
		SupabaseServiceRoleKey: cfg.SupabaseServiceRoleKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create supabase client: %w", err)
	}

	row := map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"role":  "admin",
	}
	if _, _, err := client.Supabase.From("admin_profiles").
		Insert(row, true, "id", "minimal", "").
		Execute(); err != nil {
		return fmt.Errorf("failed to upsert admin profile: %w", err)
	}

	logrus.Info("admin profile upserted")
	return nil
}

func findUserByEmail(ctx context.Context, authClient *supabase.AuthClient, email string) (*supabase.AuthUser, error) {
	users, err := authClient.AdminListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth users: %w", err)
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %s not found after email_exists response", email)
}
