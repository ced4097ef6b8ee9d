package zamanisdk

import (
	"context"
	"sync"
)

// SessionProvider supplies and persists the bearer token. Implementations are
// injected into the Client; the SDK never keeps the token anywhere else.
type SessionProvider interface {
	// Token returns the current token, or "" when logged out.
	Token(ctx context.Context) (string, error)

	// SetToken stores a token after a successful login.
	SetToken(ctx context.Context, token string) error

	// Clear removes the token on logout.
	Clear(ctx context.Context) error
}

// RedirectStore is implemented by session providers that also remember where
// to send the user once login completes.
type RedirectStore interface {
	SetRedirectAfterLogin(ctx context.Context, target string) error

	// TakeRedirectAfterLogin returns and removes the stored target.
	TakeRedirectAfterLogin(ctx context.Context) (string, error)
}

// MemorySession is an in-process SessionProvider. It is safe for concurrent
// use and is what the gateway uses for request-scoped tokens.
type MemorySession struct {
	mu       sync.RWMutex
	token    string
	redirect string
}

// NewMemorySession returns a session holding token (which may be empty).
func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

func (s *MemorySession) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemorySession) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySession) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.redirect = ""
	return nil
}

func (s *MemorySession) SetRedirectAfterLogin(ctx context.Context, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirect = target
	return nil
}

func (s *MemorySession) TakeRedirectAfterLogin(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.redirect
	s.redirect = ""
	return target, nil
}

// noSession is used when the Client was built without a provider.
type noSession struct{}

func (noSession) Token(context.Context) (string, error)  { return "", nil }
func (noSession) SetToken(context.Context, string) error { return nil }
func (noSession) Clear(context.Context) error            { return nil }
