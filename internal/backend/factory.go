// Package backend selects and builds the farm API implementation the
// dashboard talks to.
package backend

import (
	"fmt"
	"time"

	"farmdash/internal/farmapi"
	"farmdash/internal/farmapi/memory"
	"farmdash/internal/farmapi/rest"
	"farmdash/internal/log"
)

const (
	RESTBackend   BackendType = "rest"
	MemoryBackend BackendType = "memory"
)

// BackendType selects the backend implementation.
type BackendType string

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case RESTBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// REST specific
	BaseURL string
	Timeout time.Duration
}

// CreateBackend builds a farm API client from config. The memory backend
// exists for local development and handler tests.
func CreateBackend(cfg Config, logger *log.Logger) (farmapi.Backend, error) {
	switch cfg.Type {
	case RESTBackend:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("rest backend requires a base URL")
		}
		logger.Info("Initialized REST backend", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
		return rest.NewClient(cfg.BaseURL, rest.WithTimeout(cfg.Timeout)), nil
	case MemoryBackend:
		logger.Info("Initialized memory backend")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}
}
