// Package session owns the authentication lifecycle: signing in and out,
// persisting the token and user between runs, and re-establishing the
// session at startup.
//
// Store methods that talk to the backend return a Result instead of an
// error; callers branch on Success and show Message to the user. The only
// states are anonymous and authenticated, with a latch around token
// verification so concurrent checks cannot stampede the backend.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/errors"
	"github.com/felixgeelhaar/kopi/internal/log"
	"github.com/felixgeelhaar/kopi/internal/storage"
)

// fakeAdminTokenPrefix marks locally fabricated admin tokens. Tokens with
// this prefix never go through backend verification.
const fakeAdminTokenPrefix = "fake-admin-token-"

// DefaultRedirectPath is where a signed-in user lands when no redirect
// target was recorded.
const DefaultRedirectPath = "/menu"

// Result is the uniform outcome of a session operation.
type Result struct {
	Success bool
	Message string
	Errors  []string
}

// IsFakeAdminToken reports whether the token was fabricated locally by
// the degraded admin sign-in path.
func IsFakeAdminToken(token string) bool {
	return strings.HasPrefix(token, fakeAdminTokenPrefix)
}

// Store is the auth session state machine.
type Store struct {
	mu sync.Mutex

	client  *api.Client
	storage storage.Store
	logger  *log.Logger

	user         *api.User
	token        string
	refreshToken string

	// checkInProgress latches while a verification round-trip is running.
	checkInProgress bool
}

// New creates a session store over the given persistent state.
// Bind must be called with the API client before any backend operation.
func New(st storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		storage: st,
		logger:  logger,
	}
}

// Bind attaches the API client. The client reads its bearer token from
// this store, so the two are constructed in sequence and then bound.
func (s *Store) Bind(client *api.Client) {
	s.client = client
}

// Token returns the current bearer token, or "" when signed out.
// This is the client's TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Store) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token and user are both present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// IsAdmin reports whether the signed-in user holds the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.IsAdmin()
}

// Login authenticates a regular user.
func (s *Store) Login(ctx context.Context, creds api.Credentials) Result {
	data, err := s.client.Login(ctx, creds)
	if err != nil {
		return resultFromError(err)
	}

	s.establish(data)
	return Result{Success: true, Message: "signed in"}
}

// Register creates an account and signs the new user in.
func (s *Store) Register(ctx context.Context, reg api.Registration) Result {
	data, err := s.client.Register(ctx, reg)
	if err != nil {
		return resultFromError(err)
	}

	s.establish(data)
	return Result{Success: true, Message: "account created"}
}

// AdminLogin authenticates against the back-office endpoint.
func (s *Store) AdminLogin(ctx context.Context, creds api.Credentials) Result {
	data, err := s.client.AdminLogin(ctx, creds)
	if err != nil {
		return resultFromError(err)
	}

	s.establish(data)
	return Result{Success: true, Message: "signed in as administrator"}
}

// SetAdminAuth establishes an admin session without a backend round-trip,
// fabricating a local token. Used when the auth service is unavailable but
// back-office work has to continue.
func (s *Store) SetAdminAuth(user *api.User) Result {
	token := fmt.Sprintf("%s%d", fakeAdminTokenPrefix, time.Now().UnixMilli())

	s.establish(&api.LoginData{User: user, Token: token})
	s.logger.Warn("established degraded admin session without verification")
	return Result{Success: true, Message: "signed in as administrator (degraded mode)"}
}

// Logout clears the session unconditionally. It never calls the backend:
// a dead token on the server is harmless, a stuck client is not.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ForceLogout is the 401 hook: the backend told us the session is gone.
func (s *Store) ForceLogout() {
	s.logger.Warn("session rejected by backend, signing out")
	s.Logout()
}

// CheckAuthStatus re-establishes the session from persisted state. It is
// safe to call on every startup and before guarded navigation.
//
// The in-memory short-circuit means a token revoked server-side is not
// noticed until a request fails with 401; that failure forces a logout,
// so the window is one request wide.
func (s *Store) CheckAuthStatus(ctx context.Context) bool {
	s.mu.Lock()

	if s.checkInProgress {
		s.mu.Unlock()
		return false
	}

	rawToken, tokenErr := s.storage.Get(storage.KeyToken)
	rawUser, userErr := s.storage.Get(storage.KeyUser)
	if tokenErr != nil || userErr != nil {
		s.mu.Unlock()
		return false
	}

	hadMemory := s.token != "" && s.user != nil

	if s.token == "" {
		s.token = string(rawToken)
	}
	if s.user == nil {
		var u api.User
		if err := json.Unmarshal(rawUser, &u); err != nil {
			s.logger.Warn("discarding corrupt persisted user", "error", err)
			s.clearLocked()
			s.mu.Unlock()
			return false
		}
		s.user = &u
	}
	if s.refreshToken == "" {
		if raw, err := s.storage.Get(storage.KeyRefreshToken); err == nil {
			s.refreshToken = string(raw)
		}
	}

	if IsFakeAdminToken(s.token) {
		s.mu.Unlock()
		return true
	}

	if hadMemory {
		s.mu.Unlock()
		return true
	}

	s.checkInProgress = true
	s.mu.Unlock()

	user, err := s.client.VerifyToken(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkInProgress = false

	if err == nil {
		s.user = user
		s.persistUserLocked()
		return true
	}

	// A 401 already forced a logout through the client hook; the persisted
	// token is gone in that case. Anything else (the service is down, a
	// flaky network) keeps the session alive optimistically.
	if _, gerr := s.storage.Get(storage.KeyToken); gerr == nil && s.user != nil {
		s.logger.Debug("verification unreachable, keeping persisted session", "error", err)
		return true
	}

	s.clearLocked()
	return false
}

// UpdateProfile applies profile changes and refreshes the in-memory user.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) Result {
	user, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return resultFromError(err)
	}

	s.mu.Lock()
	s.user = user
	s.persistUserLocked()
	s.mu.Unlock()

	return Result{Success: true, Message: "profile updated"}
}

// ChangePassword rotates the account password.
func (s *Store) ChangePassword(ctx context.Context, change api.PasswordChange) Result {
	if err := s.client.ChangePassword(ctx, change); err != nil {
		return resultFromError(err)
	}
	return Result{Success: true, Message: "password changed"}
}

// RefreshAccessToken exchanges the refresh token for a new access token.
// Any failure tears the session down: a session that cannot refresh is
// not worth limping along with.
func (s *Store) RefreshAccessToken(ctx context.Context) bool {
	s.mu.Lock()
	rt := s.refreshToken
	s.mu.Unlock()

	if rt == "" {
		s.Logout()
		return false
	}

	token, err := s.client.RefreshToken(ctx, rt)
	if err != nil {
		s.logger.Warn("token refresh failed, signing out", "error", err)
		s.Logout()
		return false
	}

	s.mu.Lock()
	s.token = token
	if err := s.storage.Put(storage.KeyToken, []byte(token)); err != nil {
		s.logger.Warn("failed to persist refreshed token", "error", err)
	}
	s.mu.Unlock()
	return true
}

// SetRedirectPath records where to send the user after the next sign-in.
func (s *Store) SetRedirectPath(path string) {
	if err := s.storage.Put(storage.KeyRedirectPath, []byte(path)); err != nil {
		s.logger.Warn("failed to persist redirect path", "error", err)
	}
}

// RedirectPath returns the recorded post-login destination.
func (s *Store) RedirectPath() string {
	raw, err := s.storage.Get(storage.KeyRedirectPath)
	if err != nil || len(raw) == 0 {
		return DefaultRedirectPath
	}
	return string(raw)
}

// ClearRedirectPath drops the recorded destination.
func (s *Store) ClearRedirectPath() {
	if err := s.storage.Delete(storage.KeyRedirectPath); err != nil {
		s.logger.Warn("failed to clear redirect path", "error", err)
	}
}

// establish installs a signed-in session in memory and storage.
func (s *Store) establish(data *api.LoginData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = data.User
	s.token = data.Token
	s.refreshToken = data.RefreshToken

	if err := s.storage.Put(storage.KeyToken, []byte(data.Token)); err != nil {
		s.logger.Warn("failed to persist token", "error", err)
	}
	s.persistUserLocked()
	if data.RefreshToken != "" {
		if err := s.storage.Put(storage.KeyRefreshToken, []byte(data.RefreshToken)); err != nil {
			s.logger.Warn("failed to persist refresh token", "error", err)
		}
	}
}

func (s *Store) persistUserLocked() {
	raw, err := json.Marshal(s.user)
	if err != nil {
		s.logger.Warn("failed to serialize user", "error", err)
		return
	}
	if err := s.storage.Put(storage.KeyUser, raw); err != nil {
		s.logger.Warn("failed to persist user", "error", err)
	}
}

func (s *Store) clearLocked() {
	s.user = nil
	s.token = ""
	s.refreshToken = ""

	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyRefreshToken} {
		if err := s.storage.Delete(key); err != nil {
			s.logger.Warn("failed to clear persisted session key", "key", key, "error", err)
		}
	}
}

// resultFromError converts a backend failure into the uniform Result.
func resultFromError(err error) Result {
	if kerr, ok := err.(*errors.KopiError); ok {
		msgs := kerr.Suggestions
		if len(msgs) == 0 {
			msgs = []string{kerr.Message}
		}
		return Result{Success: false, Message: kerr.Message, Errors: msgs}
	}
	return Result{Success: false, Message: err.Error(), Errors: []string{err.Error()}}
}
