package github

import (
	"time"
)

const Version = "1.0.0"

const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "ksm-github-sync v" + Version
	DefaultPageSize  = 100
	DefaultPageDelay = 3 * time.Second

	graphqlPath = "/graphql"
)

// Config holds the connection settings of a Client.
type Config struct {
	BaseURL   string
	UserAgent string
	// PageSize is the number of teams requested per page.
	PageSize int
	// FailOnHTTPError makes a non-200 page response fail Fetch with ErrPageStatus.
	// When false the page is read as an empty response and pagination ends there.
	FailOnHTTPError bool
}

// DefaultConfig returns the settings used for api.github.com.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		PageSize:  DefaultPageSize,
	}
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}
