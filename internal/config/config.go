// Package config loads application configuration from a YAML file with
// environment variable overrides. Remote API endpoints, timeouts, and the
// episode matching thresholds all live here so deployments can tune them
// without code changes.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration.
type Config struct {
	Feed      FeedConfig      `yaml:"feed"`
	Directory DirectoryConfig `yaml:"directory"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Featured  FeaturedConfig  `yaml:"featured"`
}

// FeedConfig controls RSS feed fetching.
type FeedConfig struct {
	// Timeout bounds a single feed fetch including redirects and body read.
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent is sent to podcast hosts; several CDNs reject empty agents.
	UserAgent string `yaml:"user_agent"`
}

// DirectoryConfig controls access to the remote podcast directory API.
type DirectoryConfig struct {
	SearchURL string        `yaml:"search_url"`
	LookupURL string        `yaml:"lookup_url"`
	Timeout   time.Duration `yaml:"timeout"`
	// SearchLimit is the maximum podcasts requested per search call.
	SearchLimit int `yaml:"search_limit"`
	// LookupLimit is the maximum episode entries requested per lookup call.
	LookupLimit int `yaml:"lookup_limit"`
	// DefaultCountry is used when a search request does not specify one.
	DefaultCountry string `yaml:"default_country"`
	// RequestsPerSecond and Burst configure the client-side token bucket.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// MatcherConfig holds the episode matching policy knobs.
// The threshold and window values are heuristics with no hard justification;
// they are configuration, not contract.
type MatcherConfig struct {
	// TitleOverlapThreshold is the minimum token-overlap ratio for a title match.
	TitleOverlapThreshold float64 `yaml:"title_overlap_threshold"`
	// DateWindow is the maximum distance between feed publish date and
	// catalog release date for the date fallback match.
	DateWindow time.Duration `yaml:"date_window"`
	// MaxRemoteItems caps how many items per feed may trigger a catalog
	// lookup. Counted from the head of the feed, not per page.
	MaxRemoteItems int `yaml:"max_remote_items"`
}

// FeaturedConfig controls the cross-podcast featured episodes view.
type FeaturedConfig struct {
	// MaxPodcasts bounds the fan-out; only the first N podcasts are queried.
	MaxPodcasts int `yaml:"max_podcasts"`
	// MaxEpisodes caps the merged result.
	MaxEpisodes int `yaml:"max_episodes"`
	// EpisodesPerPodcast is the page size requested from each podcast.
	EpisodesPerPodcast int `yaml:"episodes_per_podcast"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Feed: FeedConfig{
			Timeout:   10 * time.Second,
			UserAgent: "PodcastBrowserBot/1.0",
		},
		Directory: DirectoryConfig{
			SearchURL:         "https://itunes.apple.com/search",
			LookupURL:         "https://itunes.apple.com/lookup",
			Timeout:           5 * time.Second,
			SearchLimit:       50,
			LookupLimit:       200,
			DefaultCountry:    "SA",
			RequestsPerSecond: 2.0,
			Burst:             5,
		},
		Matcher: MatcherConfig{
			TitleOverlapThreshold: 0.5,
			DateWindow:            48 * time.Hour,
			MaxRemoteItems:        5,
		},
		Featured: FeaturedConfig{
			MaxPodcasts:        6,
			MaxEpisodes:        15,
			EpisodesPerPodcast: 2,
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// Default() when the file does not exist. Values absent from the file keep
// their defaults. The CONFIG_FILE environment variable takes precedence
// over the path argument.
func Load(path string) (*Config, error) {
	if env := os.Getenv("CONFIG_FILE"); env != "" {
		path = env
	}

	cfg := Default()

	if path != "" {
		// #nosec G304 -- path is provided by trusted source (CLI arg or env), not user input
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return &cfg, nil
			}
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies the small set of environment overrides used in
// deployment manifests.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FEED_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Feed.Timeout = d
		}
	}
	if v := os.Getenv("FEED_USER_AGENT"); v != "" {
		cfg.Feed.UserAgent = v
	}
	if v := os.Getenv("DIRECTORY_LOOKUP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Directory.Timeout = d
		}
	}
	if v := os.Getenv("MATCHER_MAX_REMOTE_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Matcher.MaxRemoteItems = n
		}
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed timeout must be positive")
	}
	if c.Feed.UserAgent == "" {
		return fmt.Errorf("feed user_agent is required")
	}
	if c.Directory.SearchURL == "" || c.Directory.LookupURL == "" {
		return fmt.Errorf("directory search_url and lookup_url are required")
	}
	if c.Directory.Timeout <= 0 {
		return fmt.Errorf("directory timeout must be positive")
	}
	if c.Directory.LookupLimit <= 0 {
		return fmt.Errorf("directory lookup_limit must be positive")
	}
	if c.Matcher.TitleOverlapThreshold <= 0 || c.Matcher.TitleOverlapThreshold > 1 {
		return fmt.Errorf("matcher title_overlap_threshold must be in (0, 1]")
	}
	if c.Matcher.DateWindow <= 0 {
		return fmt.Errorf("matcher date_window must be positive")
	}
	if c.Matcher.MaxRemoteItems < 0 {
		return fmt.Errorf("matcher max_remote_items must not be negative")
	}
	if c.Featured.MaxPodcasts <= 0 || c.Featured.MaxEpisodes <= 0 {
		return fmt.Errorf("featured max_podcasts and max_episodes must be positive")
	}
	return nil
}
