package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	"github.com/urfave/cli/v2"

	"fitness-intake-backend/internal/config"
	"fitness-intake-backend/internal/submission"
	"fitness-intake-backend/internal/supabase"
)

var smokeTestCommand = &cli.Command{
	Name:  "smoke-test",
	Usage: "Insert and remove a marker submission through the REST API to verify connectivity",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.SupabaseAnonKey == "" {
			return fmt.Errorf("set SUPABASE_ANON_KEY")
		}

		client, err := supabase.NewClient(&config.Config{
			SupabaseURL:     cfg.SupabaseURL,
			SupabaseAnonKey: cfg.SupabaseAnonKey,
		})
		if err != nil {
			return fmt.Errorf("failed to create supabase client: %w", err)
		}

		submissionID := submission.NewSubmissionID()
		row := map[string]interface{}{
			"submission_id": submissionID,
			"user_name":     "Smoke Test",
			"email":         "smoke-test@example.com",
			"form_version":  "v1.0",
			"submitted_at":  time.Now().UTC().Format(time.RFC3339),
		}

		if _, _, err := client.Supabase.From("form_submissions").
			Insert(row, false, "", "minimal", "").
			Execute(); err != nil {
			return fmt.Errorf("insert failed: %w", err)
		}
		logrus.WithField("submission_id", submissionID).Info("insert ok")

		data, _, err := client.Supabase.From("form_submissions").
			Select("submission_id,user_name,submitted_at", "", false).
			Order("submitted_at", &postgrest.OrderOpts{Ascending: false}).
			Limit(5, "").
			Execute()
		if err != nil {
			return fmt.Errorf("select failed: %w", err)
		}

		var recent []map[string]interface{}
		if err := json.Unmarshal(data, &recent); err != nil {
			return fmt.Errorf("failed to decode select response: %w", err)
		}
		for _, r := range recent {
			logrus.WithFields(logrus.Fields{
				"submission_id": r["submission_id"],
				"submitted_at":  r["submitted_at"],
			}).Info("recent submission")
		}

		if _, _, err := client.Supabase.From("form_submissions").
			Delete("", "").
			Eq("submission_id", submissionID).
			Execute(); err != nil {
			return fmt.Errorf("cleanup delete failed: %w", err)
		}
		logrus.Info("cleanup ok, smoke test passed")

		return nil
	},
}
