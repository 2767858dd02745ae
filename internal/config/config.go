// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads lapsed-patents settings from defaults, an optional YAML
// file, a .env file, and LAPSED_PATENTS_* environment variables, then
// validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/lapsed-patents/pkg/types"
)

// EnvPrefix is prepended to every environment override, e.g.
// LAPSED_PATENTS_BACKEND_BASE_URL.
const EnvPrefix = "LAPSED_PATENTS"

// Default returns the built-in configuration.
func Default() types.Config {
	return types.Config{
		Backend: types.BackendConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "lapsed-patents/0.1",
			},
			BaseURL: "http://localhost:8000",
		},
		Search: types.SearchConfig{
			PerPage:  20,
			SortBy:   types.SortByDate,
			SortDir:  types.SortDesc,
			CacheTTL: 5 * time.Minute,
		},
		Links: types.LinksConfig{
			Mode:           types.LinkRecord,
			RecordTemplate: "https://patents.google.com/patent/{id}",
			SearchTemplate: "https://patents.google.com/?q={id}",
			FallbackURL:    "https://patents.google.com/",
		},
		Log: types.LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// SetDefaults registers every key of Default with v so that environment
// variables can override keys that appear in no config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("backend.base_url", d.Backend.BaseURL)
	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("backend.user_agent", d.Backend.UserAgent)
	v.SetDefault("search.per_page", d.Search.PerPage)
	v.SetDefault("search.sort_by", string(d.Search.SortBy))
	v.SetDefault("search.sort_dir", string(d.Search.SortDir))
	v.SetDefault("search.cache_ttl", d.Search.CacheTTL)
	v.SetDefault("links.mode", string(d.Links.Mode))
	v.SetDefault("links.record_template", d.Links.RecordTemplate)
	v.SetDefault("links.search_template", d.Links.SearchTemplate)
	v.SetDefault("links.fallback_url", d.Links.FallbackURL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}

// BindEnv makes v read LAPSED_PATENTS_SECTION_KEY for every section.key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg against its struct tags. The error lists every invalid
// key by its config path, e.g. "search.per_page".
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	key = strings.ReplaceAll(key, "HTTPConfig.", "")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "url":
		return fmt.Sprintf("%s must be an absolute URL, got %q", key, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fmt.Sprint(fe.Value()))
	case "contains":
		return fmt.Sprintf("%s must contain %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", key, fe.Tag(), fe.Param(), fe.Value())
	}
}
