package mustache

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config contains all configuration options for the mustache engine
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// ExtendedJSON enables the structured-data extension: {{@}} anchors,
	// {{$path}} / {{%path}} JSON emission, {{#-top-}} whole-stack sections
	// and anchored map iteration.
	ExtendedJSON bool
	// MaxLambdaDepth bounds nested lambda re-expansion. A lambda whose
	// output expands to another lambda occurrence can recurse without
	// static bound; exceeding this depth fails the render. 0 disables
	// the check.
	MaxLambdaDepth int
	// CacheMaxSize is the maximum number of templates to cache. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached templates. 0 means no expiration.
	CacheTTL time.Duration
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		ExtendedJSON:   false,
		MaxLambdaDepth: 100,
		CacheMaxSize:   100,
		CacheTTL:       0,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// MUSTACHE_LOG_LEVEL
	if val := os.Getenv("MUSTACHE_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// MUSTACHE_EXTENDED_JSON
	if val := os.Getenv("MUSTACHE_EXTENDED_JSON"); val != "" {
		config.ExtendedJSON = parseBool(val)
	}

	// MUSTACHE_MAX_LAMBDA_DEPTH
	if val := os.Getenv("MUSTACHE_MAX_LAMBDA_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxLambdaDepth = depth
		}
	}

	// MUSTACHE_CACHE_MAX_SIZE
	if val := os.Getenv("MUSTACHE_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	// MUSTACHE_CACHE_TTL
	if val := os.Getenv("MUSTACHE_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxLambdaDepth < 0 {
		return errors.New("max lambda depth cannot be negative")
	}

	if c.CacheMaxSize < 0 {
		return errors.New("cache max size cannot be negative")
	}

	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
