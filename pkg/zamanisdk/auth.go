package zamanisdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AuthService covers login, registration and the current profile.
type AuthService struct {
	c *Client
}

// Login exchanges credentials for a token and stores it in the session.
// When the backend demands a password change the returned *APIError reports
// MustChangePassword() and nothing is stored.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	resp, err := sendData[LoginResponse](ctx, s.c, http.MethodPost, "/auth/login", req, SkipAuth())
	if err != nil {
		return nil, err
	}

	if err := s.c.session.SetToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return &resp, nil
}

// Logout tells the backend to end the session and always clears the local
// token, even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	_, callErr := s.c.Post(ctx, "/auth/logout", nil)
	if err := s.c.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return callErr
}

// Me returns the profile of the current token.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	user, _, err := getData[User](ctx, s.c, "/auth/me")
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account. It is sent without authorization.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}
	user, err := sendData[User](ctx, s.c, http.MethodPost, "/auth/register", req, SkipAuth())
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetPassword sets a new password, either from an invitation token or as a
// forced change after login.
func (s *AuthService) SetPassword(ctx context.Context, req SetPasswordRequest) error {
	if errs := req.Validate(); errs != nil {
		return errs
	}

	var opts []RequestOption
	if req.Token != "" {
		opts = append(opts, SkipAuth())
	}
	_, err := s.c.Post(ctx, "/auth/set-password", req, opts...)
	return err
}

// CheckUsername asks whether a username is still free.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (*Availability, error) {
	avail, _, err := getData[Availability](ctx, s.c, "/auth/check-username",
		WithQuery(url.Values{"username": {username}}),
	)
	if err != nil {
		return nil, err
	}
	avail.Value = username
	return &avail, nil
}
