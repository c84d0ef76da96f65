//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// RegisterPlayer creates a new player and returns the auth token and player ID.
func (env *TestEnv) RegisterPlayer(gameID, username, password string) (token string, playerID uuid.UUID) {
	env.t.Helper()
	resp := env.POST("/auth/register", map[string]string{
		"game_id":  gameID,
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterPlayer: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Token    string    `json:"token"`
		PlayerID uuid.UUID `json:"player_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("RegisterPlayer: decode: %v", err)
	}
	return result.Token, result.PlayerID
}

// LoginPlayer authenticates an existing player and returns the auth token.
func (env *TestEnv) LoginPlayer(gameID, username, password string) string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"game_id":  gameID,
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginPlayer: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginPlayer: decode: %v", err)
	}
	return result.Token
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("POST", path, body, token, "")
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.do("GET", path, nil, token, "")
}

// AuthPUT performs an authenticated PUT request.
func (env *TestEnv) AuthPUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("PUT", path, body, token, "")
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.do("DELETE", path, nil, token, "")
}

// AdminGET performs a GET request carrying the admin secret.
func (env *TestEnv) AdminGET(path string) *http.Response {
	env.t.Helper()
	return env.do("GET", path, nil, "", TestAdminSecret)
}

// AdminPOST performs a POST request carrying the admin secret.
func (env *TestEnv) AdminPOST(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.do("POST", path, body, "", TestAdminSecret)
}

// AdminPUT performs a PUT request carrying the admin secret.
func (env *TestEnv) AdminPUT(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.do("PUT", path, body, "", TestAdminSecret)
}

// AdminDELETE performs a DELETE request carrying the admin secret.
func (env *TestEnv) AdminDELETE(path string) *http.Response {
	env.t.Helper()
	return env.do("DELETE", path, nil, "", TestAdminSecret)
}

func (env *TestEnv) do(method, path string, body interface{}, token, adminSecret string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if adminSecret != "" {
		req.Header.Set("X-Admin-Secret", adminSecret)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
