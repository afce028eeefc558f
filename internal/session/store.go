// Package session persists the admin session between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/naveenspark/backoffice/pkg/client"
	"github.com/naveenspark/backoffice/pkg/domain"
)

// fileName is the session file inside the config directory.
const fileName = "session.json"

type record struct {
	AccessToken  string        `json:"access_token,omitempty"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	Admin        *domain.Admin `json:"admin,omitempty"`
}

// FileStore keeps the session in a 0600 JSON file. Every read goes to disk,
// so a login from another terminal is picked up on the next request.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultPath returns ~/.backoffice/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".backoffice", fileName), nil
}

// NewFileStore returns a store backed by path. The file is created on the
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() (record, error) {
	var r record
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return r, fmt.Errorf("read session: %w", err)
	}
	if len(data) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	return r, nil
}

func (s *FileStore) save(r record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// Write then rename so a concurrent reader never sees a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *FileStore) update(fn func(*record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.load()
	if err != nil {
		return err
	}
	fn(&r)
	return s.save(r)
}

// Tokens implements client.TokenStore.
func (s *FileStore) Tokens() (domain.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.load()
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}, nil
}

// SetTokens implements client.TokenStore. The stored profile is kept.
func (s *FileStore) SetTokens(p domain.TokenPair) error {
	return s.update(func(r *record) {
		r.AccessToken = p.AccessToken
		r.RefreshToken = p.RefreshToken
	})
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Admin implements client.ProfileStore.
func (s *FileStore) Admin() (*domain.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.load()
	if err != nil {
		return nil, err
	}
	return r.Admin, nil
}

// SetAdmin implements client.ProfileStore.
func (s *FileStore) SetAdmin(a *domain.Admin) error {
	return s.update(func(r *record) { r.Admin = a })
}

var (
	_ client.TokenStore   = (*FileStore)(nil)
	_ client.ProfileStore = (*FileStore)(nil)
)

// Claims is the display subset of an access token.
type Claims struct {
	Subject   string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expiry is before now. A token without
// an exp claim never expires.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// InspectToken decodes the claims of tok WITHOUT verifying its signature.
// The result is for display only; the server remains the authority.
func InspectToken(tok string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, mc); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}
	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	c.Email, _ = mc["email"].(string)
	c.Role, _ = mc["role"].(string)
	if c.Subject == "" {
		// Some issuers put the admin id in "id" instead of "sub".
		switch id := mc["id"].(type) {
		case string:
			c.Subject = id
		case float64:
			c.Subject = fmt.Sprintf("%.0f", id)
		}
	}
	return c, nil
}
