package flightapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// expiryMargin is subtracted from the server-provided TTL so a token is never
// presented moments before the upstream considers it expired.
const expiryMargin = 60 * time.Second

const defaultTokenTimeout = 10 * time.Second

type TokenConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// TokenSource owns the process-wide cached bearer token for the pricing API.
// A stale cache triggers exactly one client-credentials grant no matter how
// many callers race on it; the waiters share the refreshed token.
type TokenSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	client       *http.Client
	now          func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenSource(cfg TokenConfig) *TokenSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTokenTimeout
	}
	return &TokenSource{
		tokenURL:     cfg.TokenURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       &http.Client{Timeout: timeout},
		now:          time.Now,
	}
}

// Token returns a bearer token that is valid for at least expiryMargin.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	if token, ok := s.cached(); ok {
		return token, nil
	}

	value, err, _ := s.group.Do("token", func() (any, error) {
		// A waiter queued behind a finished refresh finds a warm cache here.
		if token, ok := s.cached(); ok {
			return token, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (s *TokenSource) cached() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.now().Before(s.expiresAt) {
		return "", false
	}
	return s.token, true
}

func (s *TokenSource) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Kind: AuthProtocol, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &AuthError{Kind: AuthTimeout, Err: err}
		}
		return "", &AuthError{Kind: AuthProtocol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &AuthError{
			Kind: AuthProtocol,
			Err:  fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &AuthError{Kind: AuthProtocol, Err: fmt.Errorf("decode token response: %w", err)}
	}
	if payload.AccessToken == "" || payload.ExpiresIn <= 0 {
		return "", &AuthError{Kind: AuthProtocol, Err: fmt.Errorf("token response missing access_token or expires_in")}
	}

	s.mu.Lock()
	s.token = payload.AccessToken
	s.expiresAt = s.now().Add(time.Duration(payload.ExpiresIn)*time.Second - expiryMargin)
	s.mu.Unlock()

	return payload.AccessToken, nil
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
