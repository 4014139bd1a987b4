package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type cliConfig struct {
	SupabaseURL            string `envconfig:"SUPABASE_URL"`
	SupabaseAnonKey        string `envconfig:"SUPABASE_ANON_KEY"`
	SupabaseServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY"`
	DatabaseURL            string `envconfig:"DATABASE_URL"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

func loadConfig() (*cliConfig, error) {
	c := new(cliConfig)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.SupabaseURL == "" {
		return nil, fmt.Errorf("set SUPABASE_URL")
	}

	return c, nil
}
