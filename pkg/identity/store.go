// Package identity owns the registered users and the single current
// session. It is the leaf store: content and messaging reference users
// only by id and resolve them through GetUserByID.
package identity

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"socialdb/pkg/logger"
	"socialdb/pkg/models"
	"socialdb/pkg/seed"
	"socialdb/pkg/store"
	"socialdb/pkg/telemetry"
	"socialdb/pkg/utils"
)

// StorageKey is the blob key the full identity state lives under.
const StorageKey = "auth-storage"

// Store holds users in registration order plus the session pointer.
// The mutex keeps single-writer atomicity if callers ever run
// concurrently; every mutation writes the full state through before
// returning.
type Store struct {
	mu      sync.RWMutex
	blob    store.Blob
	users   []models.User
	current models.UserID
}

type persisted struct {
	Users         []models.User `json:"users"`
	CurrentUserID models.UserID `json:"currentUserId"`
}

// ProfileUpdate carries the fields a profile update may change. Nil
// means "leave as is".
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
}

// NewStore loads identity state from blob, seeding the default users on
// first run (absent blob).
func NewStore(blob store.Blob) (*Store, error) {
	s := &Store{blob: blob}
	raw, ok, err := blob.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", StorageKey, err)
	}
	if !ok {
		s.users = seed.Users(time.Now().UTC())
		if err := s.persist("seed"); err != nil {
			return nil, err
		}
		logger.Info("identity_seeded", "users", len(s.users))
		return s, nil
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	s.users = p.Users
	s.current = p.CurrentUserID
	return s, nil
}

// persist writes the full state through to the blob store. Callers must
// hold the write lock.
func (s *Store) persist(op string) error {
	b, err := json.Marshal(persisted{Users: s.users, CurrentUserID: s.current})
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.blob.Set(StorageKey, b); err != nil {
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	telemetry.Mutation("identity", op)
	return nil
}

// Login looks a user up by case-insensitive username and makes them the
// session. The password is accepted but never verified: no credential
// is stored anywhere, so any password logs in any existing user. That
// is the documented contract of this layer, not an oversight.
func (s *Store) Login(username, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			s.current = u.ID
			if err := s.persist("login"); err != nil {
				return false, err
			}
			logger.Info("login_ok", "user", string(u.ID), "username", u.Username)
			return true, nil
		}
	}
	logger.Info("login_unknown_user", "username", username)
	return false, nil
}

// Register creates a user and makes them the session. It fails (false)
// when the username is already taken, compared case-insensitively.
// Username and password length rules are the caller's job.
func (s *Store) Register(username, displayName, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			logger.Info("register_username_taken", "username", username)
			return false, nil
		}
	}
	u := models.User{
		ID:          models.UserID(utils.GenUserID()),
		Username:    username,
		DisplayName: displayName,
		Avatar:      utils.AvatarURL(username),
		Bio:         "",
		JoinedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, u)
	s.current = u.ID
	if err := s.persist("register"); err != nil {
		return false, err
	}
	logger.Info("user_registered", "user", string(u.ID), "username", u.Username)
	return true, nil
}

// Logout clears the session unconditionally.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
	return s.persist("logout")
}

// UpdateProfile merges the given fields into the session user and the
// matching users record. No-op when logged out.
func (s *Store) UpdateProfile(upd ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" {
		return nil
	}
	for i := range s.users {
		if s.users[i].ID != s.current {
			continue
		}
		if upd.DisplayName != nil {
			s.users[i].DisplayName = *upd.DisplayName
		}
		if upd.Bio != nil {
			s.users[i].Bio = *upd.Bio
		}
		return s.persist("update_profile")
	}
	return nil
}

// GetUserByID is a pure lookup with no side effects.
func (s *Store) GetUserByID(id models.UserID) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	id := s.current
	s.mu.RUnlock()
	if id == "" {
		return models.User{}, false
	}
	return s.GetUserByID(id)
}

// Authenticated reports whether a session is set.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != ""
}

// Users returns all users in registration order.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}
