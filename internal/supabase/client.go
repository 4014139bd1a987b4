package supabase

import (
	"github.com/supabase-community/supabase-go"

	"fitness-intake-backend/internal/config"
)

// Client wraps the Supabase PostgREST client. The server's hot write path
// goes through the direct Postgres connection; this client serves the REST
// surface used by the maintenance CLI and table reads without a DATABASE_URL.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// NewServiceClient returns a client authorized with the service-role key,
// bypassing row level security. CLI use only.
func NewServiceClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
