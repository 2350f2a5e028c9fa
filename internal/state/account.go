package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and makes it the current session.
func (s *StateStore) Register(username, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byEmail(email) != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:              uuid.NewString(),
		Username:        username,
		Email:           email,
		PasswordHash:    string(hash),
		IsAdmin:         email == s.adminEmail,
		ReadingProgress: make(map[string]int),
	}
	s.data.Users[u.ID] = u
	s.data.Session = u.ID
	if err := s.save(); err != nil {
		return nil, err
	}
	return u.clone(), nil
}

// Login checks the password for email and makes that account current.
func (s *StateStore) Login(email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.byEmail(email)
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("check password: %w", err)
	}

	s.data.Session = u.ID
	if err := s.save(); err != nil {
		return nil, err
	}
	return u.clone(), nil
}

// Logout clears the current session.
func (s *StateStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Session = ""
	return s.save()
}

// Current returns the logged-in user.
func (s *StateStore) Current() (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Session == "" {
		return nil, ErrNotLoggedIn
	}
	u, ok := s.data.Users[s.data.Session]
	if !ok {
		return nil, ErrNotLoggedIn
	}
	return u.clone(), nil
}

func (s *StateStore) byEmail(email string) *User {
	for _, u := range s.data.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// ToggleFavorite adds bookID to the user's favorites, or removes it if present.
// It reports whether the book is a favorite afterwards.
func (s *StateStore) ToggleFavorite(userID, bookID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return false, err
	}
	var added bool
	if i := slices.Index(u.Favorites, bookID); i >= 0 {
		u.Favorites = slices.Delete(u.Favorites, i, i+1)
	} else {
		u.Favorites = append(u.Favorites, bookID)
		added = true
	}
	return added, s.save()
}

// Favorites returns the user's favorite book IDs in the order they were added.
func (s *StateStore) Favorites(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.data.Users[userID]; ok {
		return slices.Clone(u.Favorites)
	}
	return nil
}

// SetProgress saves reading progress for a book as a percentage, clamped to 0-100.
func (s *StateStore) SetProgress(userID, bookID string, percent int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(userID)
	if err != nil {
		return err
	}
	percent = max(0, min(100, percent))
	if u.ReadingProgress == nil {
		u.ReadingProgress = make(map[string]int)
	}
	u.ReadingProgress[bookID] = percent
	return s.save()
}

// Progress returns saved progress for a book, or 0 if not found
func (s *StateStore) Progress(userID, bookID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.data.Users[userID]; ok {
		return u.ReadingProgress[bookID]
	}
	return 0
}
