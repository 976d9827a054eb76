package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/longbourn/pemberley/utils"
)

// User is the identity resolved for a validated bearer token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client validates bearer tokens against the Supabase Auth user endpoint.
// Every call performs a fresh remote validation; no session state is kept.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new auth client for the given Supabase project
func NewClient(projectURL, apiKey string) *Client {
	return &Client{
		baseURL: projectURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Validate resolves the user behind a bearer token. Any failure mode, whether
// a transport error, a non-200 status, or a response with no user, collapses
// into a single unauthorized error.
func (c *Client) Validate(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, utils.UnauthorizedError("Token verification failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, utils.UnauthorizedError("Token verification failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.UnauthorizedError("Invalid or expired token",
			fmt.Errorf("auth service returned status %d", resp.StatusCode))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, utils.UnauthorizedError("Token verification failed", err)
	}
	if user.ID == "" {
		return nil, utils.UnauthorizedError("Invalid or expired token", nil)
	}

	return &user, nil
}
