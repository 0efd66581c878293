package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/cvmatch-client/internal/types"
)

// Login authenticates with username and password and stores the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (*types.AuthResponse, error) {
	body := types.LoginRequest{Username: username, Password: password}
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("invalid login request: %w", err)
	}

	c.logger.Printf("[API] Logging in user: %s", username)
	var resp types.AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "users/login/", body: body}, &resp); err != nil {
		c.logger.Printf("[API] Login error: %v", err)
		return nil, err
	}

	c.logger.Printf("[API] Login successful: %s", resp.Username)
	c.storeAuthToken(ctx, resp.Token, "login")
	return &resp, nil
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, body types.RegisterRequest) (*types.AuthResponse, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registration request: %w", err)
	}

	c.logger.Printf("[API] Registering user: %s", body.Username)
	var resp types.AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "users/register/", body: body}, &resp); err != nil {
		c.logger.Printf("[API] Registration error: %v", err)
		return nil, err
	}

	c.logger.Printf("[API] Registration successful: %s", resp.Username)
	c.storeAuthToken(ctx, resp.Token, "registration")
	return &resp, nil
}

// Logout ends the backend session. The local token is cleared whether or
// not the request succeeds, even when ctx is already done; the request
// error is still returned.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodPost, path: "users/logout/", auth: true}, nil)
	c.session.Clear(context.WithoutCancel(ctx))
	if err != nil {
		c.logger.Printf("[API] Logout error: %v", err)
		return err
	}
	return nil
}

// GetProfile returns the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "users/profile/", auth: true}, &user); err != nil {
		c.logger.Printf("[API] Error fetching profile: %v", err)
		return nil, err
	}
	return &user, nil
}

// UpdateProfile sends the set fields of update and returns the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, update types.ProfileUpdate) (*types.User, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile update: %w", err)
	}

	var user types.User
	if err := c.do(ctx, request{method: http.MethodPatch, path: "users/profile_update/", body: update, auth: true}, &user); err != nil {
		c.logger.Printf("[API] Error updating profile: %v", err)
		return nil, err
	}
	c.logger.Printf("[API] Profile updated successfully")
	return &user, nil
}

// ChangePassword changes the password. When the backend rotates the token
// the session picks up the new one.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*types.ChangePasswordResponse, error) {
	body := types.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("invalid password change: %w", err)
	}

	var resp types.ChangePasswordResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "users/change_password/", body: body, auth: true}, &resp); err != nil {
		c.logger.Printf("[API] Error changing password: %v", err)
		return nil, err
	}

	c.logger.Printf("[API] Password changed successfully")
	if resp.Token != "" {
		c.session.SetToken(context.WithoutCancel(ctx), resp.Token)
		c.logger.Printf("[API] Updated auth token after password change")
	}
	return &resp, nil
}
