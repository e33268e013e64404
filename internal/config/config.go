// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional at load time; required fields are checked after
// merging with CLI flags, before any external call is made.
type Config struct {
	// Run target
	Company string `json:"company,omitempty" validate:"required,fqdn"` // Company domain (e.g. stripe.com)
	UserID  string `json:"user_id,omitempty" validate:"required,email"`

	// Output
	OutputDir string `json:"output_dir,omitempty"`

	// Behavior
	Debug      bool `json:"debug,omitempty"`
	EmailOnly  bool `json:"email_only,omitempty"`
	FastWeb    bool `json:"fast_web,omitempty"`
	SaveToDocs bool `json:"save_to_docs,omitempty"`
	DocsOnly   bool `json:"docs_only,omitempty"`
	UseBrowser bool `json:"use_browser,omitempty"`

	// Credentials
	APIKey       string `json:"api_key,omitempty"`        // Gemini API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Custom Search engine ID
	GoogleToken  string `json:"google_token,omitempty"`   // OAuth access token for Gmail/Docs
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL (optional)
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks the merged configuration before the run starts. Company
// must be a plain domain and UserID a valid email address.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if ok := AsValidationErrors(err, &invalid); ok && len(invalid) > 0 {
			first := invalid[0]
			switch first.Field() {
			case "Company":
				return fmt.Errorf("invalid company domain %q (expected a bare domain like stripe.com)", c.Company)
			case "UserID":
				return fmt.Errorf("invalid user id %q (expected an email address)", c.UserID)
			}
		}
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.DocsOnly && !c.SaveToDocs {
		// --docs-only implies docs saving
		c.SaveToDocs = true
	}
	return nil
}

// AsValidationErrors unwraps a validator error list.
func AsValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// MergeWithDefaults returns a new Config with empty string fields filled from
// defaults. Bool fields are not merged; CLI flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Company == "" {
		result.Company = defaults.Company
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.GoogleToken == "" {
		result.GoogleToken = defaults.GoogleToken
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	return result
}

// FromEnv fills missing credentials from the environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if c.SearchCX == "" {
		c.SearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if c.GoogleToken == "" {
		c.GoogleToken = os.Getenv("GOOGLE_OAUTH_TOKEN")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}
