// Package profile reads and edits the signed-in user's account details.
// The session store stays the source of truth for who is signed in; this
// store shapes edits for submission and keeps a display copy.
package profile

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/kopi/internal/api"
)

// Store caches the latest profile snapshot.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	user   *api.User
}

// New creates a profile store over the API client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Fetch loads the profile and caches it.
func (s *Store) Fetch(ctx context.Context) (*api.User, error) {
	user, err := s.client.FetchProfile(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Update submits the changed fields and caches the merged profile.
// Empty-string fields are dropped so the backend only sees real edits,
// and a YYYY-MM-DD birth date is expanded to a full timestamp.
func (s *Store) Update(ctx context.Context, update api.ProfileUpdate) (*api.User, error) {
	cleaned := cleanUpdate(update)

	user, err := s.client.UpdateProfile(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// ChangePassword rotates the account password.
func (s *Store) ChangePassword(ctx context.Context, change api.PasswordChange) error {
	return s.client.ChangePassword(ctx, change)
}

// Clear drops the cached profile. Called on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// User returns the cached profile, or nil before the first fetch.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// FullName derives a display name: explicit full name, assembled
// first/last, then username as the fallback.
func FullName(u *api.User) string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	return u.Username
}

// HasAvatar reports whether the profile carries an avatar image.
func HasAvatar(u *api.User) bool {
	return u != nil && u.AvatarURL != ""
}

// cleanUpdate drops empty-string fields and normalizes the birth date.
func cleanUpdate(update api.ProfileUpdate) api.ProfileUpdate {
	update.FirstName = dropEmpty(update.FirstName)
	update.LastName = dropEmpty(update.LastName)
	update.Phone = dropEmpty(update.Phone)
	update.Gender = dropEmpty(update.Gender)
	update.AvatarURL = dropEmpty(update.AvatarURL)

	update.BirthDate = dropEmpty(update.BirthDate)
	if update.BirthDate != nil {
		if d, err := time.Parse("2006-01-02", *update.BirthDate); err == nil {
			normalized := d.UTC().Format(time.RFC3339)
			update.BirthDate = &normalized
		}
	}
	return update
}

func dropEmpty(v *string) *string {
	if v != nil && *v == "" {
		return nil
	}
	return v
}
