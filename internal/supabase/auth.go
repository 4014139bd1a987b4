package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AuthClient talks to the hosted GoTrue identity service over REST. Sign-in
// uses the anon key; the admin user endpoints require the service-role key.
type AuthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAuthClient(supabaseURL, apiKey string) *AuthClient {
	return &AuthClient{
		baseURL:    strings.TrimSuffix(supabaseURL, "/") + "/auth/v1",
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type Session struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        AuthUser `json:"user"`
}

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Code             string `json:"error_code"`
}

// SignInWithPassword exchanges admin credentials for a session token.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := a.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser resolves the user behind an access token, nil if the token is not
// valid.
func (a *AuthClient) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	var user AuthUser
	if err := a.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// AdminCreateUser creates a confirmed auth user. Requires the service-role
// key as the client's API key.
func (a *AuthClient) AdminCreateUser(ctx context.Context, email, password string) (*AuthUser, error) {
	body := map[string]interface{}{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}

	var user AuthUser
	if err := a.do(ctx, http.MethodPost, "/admin/users", a.apiKey, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminListUsers returns existing auth users.
func (a *AuthClient) AdminListUsers(ctx context.Context) ([]AuthUser, error) {
	var out struct {
		Users []AuthUser `json:"users"`
	}
	if err := a.do(ctx, http.MethodGet, "/admin/users", a.apiKey, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// AdminUpdatePassword resets a user's password by id.
func (a *AuthClient) AdminUpdatePassword(ctx context.Context, userID, password string) error {
	body := map[string]string{"password": password}
	return a.do(ctx, http.MethodPut, "/admin/users/"+userID, a.apiKey, body, nil)
}

func (a *AuthClient) do(ctx context.Context, method, path, bearer string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", a.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr authError
		if json.Unmarshal(data, &apiErr) == nil {
			if apiErr.Message != "" {
				return fmt.Errorf("auth error (%d): %s", resp.StatusCode, apiErr.Message)
			}
			if apiErr.ErrorDescription != "" {
				return fmt.Errorf("auth error (%d): %s", resp.StatusCode, apiErr.ErrorDescription)
			}
		}
		return fmt.Errorf("auth error (%d): %s", resp.StatusCode, string(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode auth response: %w", err)
		}
	}
	return nil
}

// IsEmailExists reports whether an admin create failed because the address is
// already registered.
func IsEmailExists(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "email_exists") || strings.Contains(msg, "already been registered")
}
