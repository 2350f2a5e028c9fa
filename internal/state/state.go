// Package state persists accounts, the current session and per-user reading state.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	stateFileName = "accounts.json"
	hashBytes     = 8192 // First 8KB for content hash
)

// User is an account together with its reading state.
type User struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	Email           string         `json:"email"`
	PasswordHash    string         `json:"password_hash"`
	IsAdmin         bool           `json:"is_admin"`
	Favorites       []string       `json:"favorites"`
	ReadingProgress map[string]int `json:"reading_progress"`
}

func (u *User) clone() *User {
	c := *u
	c.Favorites = slices.Clone(u.Favorites)
	c.ReadingProgress = make(map[string]int, len(u.ReadingProgress))
	for k, v := range u.ReadingProgress {
		c.ReadingProgress[k] = v
	}
	return &c
}

type stateFile struct {
	Users   map[string]*User `json:"users"`
	Session string           `json:"session,omitempty"`
	// Files maps content hashes of ingested files to book IDs.
	Files map[string]string `json:"files,omitempty"`
}

// StateStore manages persistent account and reading state
type StateStore struct {
	path       string
	adminEmail string
	cost       int
	data       stateFile
	mu         sync.RWMutex
}

// NewStateStore creates or loads state from dir. Accounts registered with
// adminEmail get admin rights.
func NewStateStore(dir, adminEmail string) (*StateStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &StateStore{
		path:       filepath.Join(dir, stateFileName),
		adminEmail: normalizeEmail(adminEmail),
		cost:       bcrypt.DefaultCost,
	}
	store.reset()
	if err := store.load(); err != nil {
		// Non-fatal - start with empty state
		store.reset()
	}
	return store, nil
}

func (s *StateStore) reset() {
	s.data = stateFile{
		Users: make(map[string]*User),
		Files: make(map[string]string),
	}
}

// ComputeHash generates content hash for file identity
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil // First 16 bytes = 32 hex chars
}

// RememberFile records that the file with content hash was ingested as bookID.
func (s *StateStore) RememberFile(hash, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Files[hash] = bookID
	return s.save()
}

// BookForFile returns the book previously ingested from a file with this hash.
func (s *StateStore) BookForFile(hash string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.data.Files[hash]
	return id, ok
}

// ForgetBook drops every reference to bookID: favorites, progress and file hashes.
func (s *StateStore) ForgetBook(bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		u.Favorites = slices.DeleteFunc(u.Favorites, func(id string) bool { return id == bookID })
		delete(u.ReadingProgress, bookID)
	}
	for h, id := range s.data.Files {
		if id == bookID {
			delete(s.data.Files, h)
		}
	}
	return s.save()
}

func (s *StateStore) user(id string) (*User, error) {
	u, ok := s.data.Users[id]
	if !ok {
		return nil, ErrUnknownUser
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *StateStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &s.data); err != nil {
		return err
	}
	if s.data.Users == nil {
		s.data.Users = make(map[string]*User)
	}
	if s.data.Files == nil {
		s.data.Files = make(map[string]string)
	}
	return nil
}

func (s *StateStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
