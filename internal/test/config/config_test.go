package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-intake-backend/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "fitness-uploads", cfg.SupabaseStorageBucket)
	assert.Equal(t, "tolerate", cfg.SubmissionRollbackPolicy)
}

func TestLoad_MissingSupabaseURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
}

func TestLoad_InvalidRollbackPolicy(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUBMISSION_ROLLBACK_POLICY", "maybe")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBMISSION_ROLLBACK_POLICY")
}

func TestLoad_StrictPolicyAccepted(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUBMISSION_ROLLBACK_POLICY", "strict")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.SubmissionRollbackPolicy)
}
