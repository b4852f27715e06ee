package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultLogLevel        = "info"
	defaultGitHubAPIURL    = "https://api.github.com"
	defaultRegistrationURL = "https://jsonplaceholder.typicode.com/users"
	defaultUpstreamTimeout = "10s"
	defaultShutdownTimeout = "5s"
	defaultRecommendSeed   = "0"
	defaultGitHubInterval  = "0s"
	defaultGitHubCacheSize = "128"
	defaultGitHubCacheTTL  = "5m"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	LogLevel        string
	GitHubAPIURL    string
	GitHubToken     string
	RegistrationURL string
	UpstreamTimeout time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// GitHub lookups: minimum spacing between upstream calls and a profile
	// cache. A zero interval or TTL turns the feature off.
	GitHubMinInterval time.Duration
	GitHubCacheSize   int
	GitHubCacheTTL    time.Duration

	// RecommendationSeed makes the recommendation shuffle repeatable; 0 means
	// seed from the clock.
	RecommendationSeed uint64
}

// Load reads envFiles (missing files are skipped) and then the environment.
// Variables already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.GitHubAPIURL = strings.TrimRight(strings.TrimSpace(getEnv("GITHUB_API_URL", defaultGitHubAPIURL)), "/")
	cfg.GitHubToken = strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	cfg.RegistrationURL = strings.TrimSpace(getEnv("REGISTRATION_URL", defaultRegistrationURL))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.UpstreamTimeout, err = parseDurationEnv("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.GitHubMinInterval, err = parseDurationEnv("GITHUB_MIN_INTERVAL", defaultGitHubInterval)
	if err != nil {
		return nil, err
	}

	cfg.GitHubCacheTTL, err = parseDurationEnv("GITHUB_CACHE_TTL", defaultGitHubCacheTTL)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseUintEnv("GITHUB_CACHE_SIZE", defaultGitHubCacheSize)
	if err != nil {
		return nil, err
	}
	cfg.GitHubCacheSize = int(cacheSize)

	cfg.RecommendationSeed, err = parseUintEnv("RECOMMENDATION_SEED", defaultRecommendSeed)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProd reports whether the app runs in a prod/release environment.
func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if cfg.GitHubMinInterval < 0 || cfg.GitHubCacheTTL < 0 {
		return fmt.Errorf("GITHUB_MIN_INTERVAL and GITHUB_CACHE_TTL must be >= 0")
	}
	if err := validateURL("GITHUB_API_URL", cfg.GitHubAPIURL); err != nil {
		return err
	}
	if err := validateURL("REGISTRATION_URL", cfg.RegistrationURL); err != nil {
		return err
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	if isProdLike(cfg.AppEnv) && cfg.RecommendationSeed != 0 {
		return fmt.Errorf("in prod/release RECOMMENDATION_SEED must not be set")
	}

	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", name)
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseUintEnv(name, fallback string) (uint64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
