// Package github looks up public GitHub profiles.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client calls the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *lru.Cache[string, cachedUser]
	cacheTTL   time.Duration
	now        func() time.Time
	log        *zap.Logger
}

type cachedUser struct {
	user      User
	fetchedAt time.Time
}

type Option func(*Client)

// WithMinInterval spaces upstream calls at least interval apart.
func WithMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.limiter = rate.NewLimiter(rate.Every(interval), 1)
		}
	}
}

// WithCache keeps up to size profiles for ttl. Only successful lookups are
// cached.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		if size <= 0 || ttl <= 0 {
			return
		}
		cache, err := lru.New[string, cachedUser](size)
		if err != nil {
			return
		}
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func NewClient(baseURL, token string, timeout time.Duration, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Inf, 1),
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUser returns the profile for username. A 404 maps to
// ErrUserNotFound, anything else that goes wrong to ErrUpstream.
func (c *Client) FetchUser(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrUserNotFound
	}

	key := strings.ToLower(username)
	if user, ok := c.cached(key); ok {
		return user, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return User{}, fmt.Errorf("wait for rate limit: %v: %w", err, ErrUpstream)
	}

	endpoint := c.baseURL + "/users/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return User{}, fmt.Errorf("build request: %w", ErrUpstream)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("github request failed", zap.String("username", username), zap.Error(err))
		return User{}, fmt.Errorf("fetch %s: %v: %w", username, err, ErrUpstream)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return User{}, fmt.Errorf("fetch %s: %w", username, ErrUserNotFound)
	case resp.StatusCode != http.StatusOK:
		c.log.Warn("github returned unexpected status",
			zap.String("username", username),
			zap.Int("status", resp.StatusCode))
		return User{}, fmt.Errorf("fetch %s: status %d: %w", username, resp.StatusCode, ErrUpstream)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, fmt.Errorf("decode %s: %v: %w", username, err, ErrUpstream)
	}

	if c.cache != nil {
		c.cache.Add(key, cachedUser{user: user, fetchedAt: c.now()})
	}
	return user, nil
}

func (c *Client) cached(key string) (User, bool) {
	if c.cache == nil {
		return User{}, false
	}
	entry, ok := c.cache.Get(key)
	if !ok {
		return User{}, false
	}
	if c.now().Sub(entry.fetchedAt) > c.cacheTTL {
		c.cache.Remove(key)
		return User{}, false
	}
	return entry.user, true
}
