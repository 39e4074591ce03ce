package ratelimiter

import (
	"fmt"
	"time"

	"docmuse/internal/config"
)

// RateLimiter decides whether a request may proceed.
type RateLimiter interface {
	// Allow returns true if the request is allowed, otherwise returns false.
	Allow() bool
}

// FromConfig builds the limiter selected by the middleware configuration.
// It returns nil when the limiter is disabled.
func FromConfig(cfg config.RateLimiterConfig) (RateLimiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Algorithm {
	case "", "tokenBucket":
		if cfg.TokenBucket.Rate <= 0 || cfg.TokenBucket.Capacity <= 0 {
			return nil, fmt.Errorf("token bucket requires a positive rate and capacity")
		}
		return NewTokenBucket(cfg.TokenBucket.Rate, cfg.TokenBucket.Capacity), nil
	case "fixedWindow":
		window, err := time.ParseDuration(cfg.FixedWindow.Window)
		if err != nil {
			return nil, fmt.Errorf("invalid fixed window duration %q: %w", cfg.FixedWindow.Window, err)
		}
		if cfg.FixedWindow.Limit <= 0 {
			return nil, fmt.Errorf("fixed window requires a positive limit")
		}
		return NewFixedWindowCounter(cfg.FixedWindow.Limit, window), nil
	default:
		return nil, fmt.Errorf("unknown rate limiter algorithm: %s", cfg.Algorithm)
	}
}
