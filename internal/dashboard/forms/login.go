package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/zamanihq/dashboard/internal/dashboard/resource"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

const (
	DefaultLandingPath = "/dashboard"
	SetPasswordPath    = "/set-password"

	MsgLoginSuccess     = "Login successful"
	MsgLoginFailed      = "Login failed. Please check your credentials."
	MsgMustSetPassword  = "Please set a new password to continue"
	MsgPasswordUpdated  = "Password updated. Please log in."
	MsgSetPasswordError = "Failed to set password"
)

// LoginResult tells the caller where to go next.
type LoginResult struct {
	// Next is the page to navigate to.
	Next string

	// MustChangePassword is set when the backend demands a new password
	// before issuing a token.
	MustChangePassword bool

	User *zamanisdk.User
}

// LoginForm submits credentials and resolves the post-login destination.
type LoginForm struct {
	hooks     *resource.Hooks
	notify    Notifier
	redirects zamanisdk.RedirectStore
}

// NewLoginForm uses the client's session as RedirectStore when it is one.
func NewLoginForm(hooks *resource.Hooks, notify Notifier) *LoginForm {
	f := &LoginForm{hooks: hooks, notify: notify}
	if rs, ok := hooks.Client().Session().(zamanisdk.RedirectStore); ok {
		f.redirects = rs
	}
	return f
}

// Submit logs in. A forced password change is not an error: the result
// points at the set-password page and no token is stored.
func (f *LoginForm) Submit(ctx context.Context, req zamanisdk.LoginRequest) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	resp, err := f.hooks.Auth().Login().Mutate(ctx, req)
	if err != nil {
		var apiErr *zamanisdk.APIError
		if errors.As(err, &apiErr) && apiErr.MustChangePassword() {
			log.Info("login requires password change", "username", req.Username)
			f.notify.Notify(ctx, LevelInfo, MsgMustSetPassword)
			return LoginResult{
				Next:               SetPasswordPath + "?" + url.Values{"username": {req.Username}}.Encode(),
				MustChangePassword: true,
			}, nil
		}

		var verrs zamanisdk.ValidationErrors
		if errors.As(err, &verrs) {
			f.notify.Notify(ctx, LevelError, MsgFixFields)
			return LoginResult{}, err
		}

		log.Warn("login failed", "username", req.Username, "err", err)
		f.notify.Notify(ctx, LevelError, zamanisdk.UserMessage(err, MsgLoginFailed))
		return LoginResult{}, err
	}

	next := DefaultLandingPath
	if f.redirects != nil {
		target, err := f.redirects.TakeRedirectAfterLogin(ctx)
		if err != nil {
			log.Warn("failed to read redirect after login", "err", err)
		} else if SafeRedirect(target) {
			next = target
		}
	}

	f.notify.Notify(ctx, LevelSuccess, MsgLoginSuccess)
	return LoginResult{Next: next, User: &resp.User}, nil
}

// SetPassword submits the set-password form and returns the login page.
func (f *LoginForm) SetPassword(ctx context.Context, req zamanisdk.SetPasswordRequest) (string, error) {
	if _, err := f.hooks.Auth().SetPassword().Mutate(ctx, req); err != nil {
		var verrs zamanisdk.ValidationErrors
		if errors.As(err, &verrs) {
			f.notify.Notify(ctx, LevelError, MsgFixFields)
		} else {
			f.notify.Notify(ctx, LevelError, zamanisdk.UserMessage(err, MsgSetPasswordError))
		}
		return "", err
	}
	f.notify.Notify(ctx, LevelSuccess, MsgPasswordUpdated)
	return "/login", nil
}

// SafeRedirect reports whether target is a same-origin absolute path that is
// not itself a login page.
func SafeRedirect(target string) bool {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return false
	}
	path, _, _ := strings.Cut(target, "?")
	switch path {
	case "/", "/login", "/register", SetPasswordPath:
		return false
	}
	return true
}
