// Package auth handles OAuth2 token management and persistence.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrTokenNotSet indicates no OAuth token is available yet.
var ErrTokenNotSet = errors.New("no token defined")

const stateTTL = 5 * time.Minute

// Token manages the OAuth2 token with thread-safe access and optional disk
// persistence. The authorization-code flow states it hands out expire after
// five minutes and are single use.
type Token struct {
	mu          sync.RWMutex
	cfg         *oauth2.Config
	token       *oauth2.Token
	persistPath string
	states      map[string]time.Time
}

// NewToken creates a token manager, loading a previously persisted token from
// persistPath when the file exists. An empty path disables persistence.
func NewToken(cfg *oauth2.Config, persistPath string) (*Token, error) {
	t := &Token{
		cfg:         cfg,
		persistPath: persistPath,
		states:      make(map[string]time.Time),
	}
	if persistPath == "" {
		return t, nil
	}

	f, err := os.Open(persistPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Token file %s doesn't exist yet, will be created on persist", persistPath)

			return t, nil
		}

		return nil, fmt.Errorf("os.Open failed: %w", err)
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("json.NewDecoder.Decode failed: %w", err)
	}
	t.token = token

	return t, nil
}

// RedirectURL generates the OAuth2 authorization URL with a fresh random state.
func (t *Token) RedirectURL() (string, error) {
	state, err := t.newState()
	if err != nil {
		return "", fmt.Errorf("newState failed: %w", err)
	}

	return t.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (t *Token) newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.states[state] = now.Add(stateTTL)

	for s, exp := range t.states {
		if exp.Before(now) {
			delete(t.states, s)
		}
	}

	return state, nil
}

func (t *Token) consumeState(state string) bool {
	if state == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, exists := t.states[state]
	if !exists {
		return false
	}

	delete(t.states, state)

	return !time.Now().After(expiry)
}

// AuthorizeCode validates the state and exchanges the authorization code for
// an access token.
func (t *Token) AuthorizeCode(ctx context.Context, code, state string) error {
	if !t.consumeState(state) {
		return errors.New("invalid or expired state parameter")
	}

	tok, err := t.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("cfg.Exchange failed: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = tok

	return nil
}

// OAuthToken returns the current OAuth2 token, or ErrTokenNotSet.
func (t *Token) OAuthToken() (*oauth2.Token, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.token == nil {
		return nil, ErrTokenNotSet
	}

	return t.token, nil
}

// Persist writes the token to disk when persistence is configured.
func (t *Token) Persist() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.persistPath == "" || t.token == nil {
		return nil
	}

	f, err := os.OpenFile(t.persistPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("os.OpenFile failed: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(t.token); err != nil {
		return fmt.Errorf("json.NewEncoder.Encode failed: %w", err)
	}

	return nil
}
