package types

import "time"

// HTTPConfig holds shared HTTP settings used when talking to the search backend.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lapsed-patents/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
}

// BackendConfig locates the inactive-patent search API.
type BackendConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API root; searches go to BaseURL + "/search".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
}

// SearchConfig holds session defaults.
type SearchConfig struct {
	// PerPage is the fixed page size for every session (default 20, backend max 100).
	PerPage int `json:"per_page" yaml:"per_page" mapstructure:"per_page" validate:"min=1,max=100"`

	// SortBy is the default sort field: date or title.
	SortBy SortField `json:"sort_by" yaml:"sort_by" mapstructure:"sort_by" validate:"oneof=date title"`

	// SortDir is the default sort direction: asc or desc.
	SortDir SortDirection `json:"sort_dir" yaml:"sort_dir" mapstructure:"sort_dir" validate:"oneof=asc desc"`

	// CacheTTL is how long identical requests are served from memory.
	// Zero disables the response cache.
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl" mapstructure:"cache_ttl" validate:"gte=0"`
}

// LinkMode selects how outbound patent links are built.
type LinkMode string

const (
	// LinkRecord links to the provider's exact patent record page.
	LinkRecord LinkMode = "record"
	// LinkSearch links to the provider's search page with the identifier as query.
	LinkSearch LinkMode = "search"
)

// LinksConfig configures the external full-text provider. Exactly one mode is
// used per deployment.
type LinksConfig struct {
	Mode LinkMode `json:"mode" yaml:"mode" mapstructure:"mode" validate:"oneof=record search"`

	// RecordTemplate contains "{id}", replaced by the path-escaped canonical identifier.
	RecordTemplate string `json:"record_template" yaml:"record_template" mapstructure:"record_template" validate:"required,contains={id}"`

	// SearchTemplate contains "{id}", replaced by the query-escaped canonical identifier.
	SearchTemplate string `json:"search_template" yaml:"search_template" mapstructure:"search_template" validate:"required,contains={id}"`

	// FallbackURL is the generic search page used when an identifier cannot be
	// canonicalized.
	FallbackURL string `json:"fallback_url" yaml:"fallback_url" mapstructure:"fallback_url" validate:"required,url"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// Format is console or json for the stderr sink.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`

	// File, when set, adds a rotating JSON log file.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// Config groups all settings.
type Config struct {
	Backend BackendConfig `json:"backend" yaml:"backend" mapstructure:"backend"`
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Links   LinksConfig   `json:"links" yaml:"links" mapstructure:"links"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
