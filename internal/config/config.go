// file: internal/config/config.go
// version: 2.1.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jdfalk/isbn-renamer/internal/fileops"
	"github.com/jdfalk/isbn-renamer/internal/isbn"
	"github.com/jdfalk/isbn-renamer/internal/organizer"
	"github.com/spf13/viper"
)

// Provider names accepted in the provider setting
const (
	ProviderOpenLibrary = "openlibrary"
	ProviderGoogleBooks = "googlebooks"
)

// Config holds application configuration
type Config struct {
	Backup         bool   `yaml:"backup"`
	BackupSuffix   string `yaml:"backup_suffix"`
	ISBNPattern    string `yaml:"isbn_pattern"`
	RenameTemplate string `yaml:"rename_template"`
	Overwrite      bool   `yaml:"overwrite"`
	DryRun         bool   `yaml:"dry_run"`
	// KeepDirectory leaves renamed files in their source directory instead
	// of the working directory
	KeepDirectory  bool   `yaml:"keep_directory"`

	// Provider is one source name or a comma separated fallback chain
	Provider           string        `yaml:"provider"`
	OpenLibraryBaseURL string        `yaml:"openlibrary_base_url,omitempty"`
	GoogleBooksBaseURL string        `yaml:"googlebooks_base_url,omitempty"`
	HTTPTimeout        time.Duration `yaml:"http_timeout"`
	RequestsPerMinute  int           `yaml:"requests_per_minute"`
	UserAgent          string        `yaml:"user_agent,omitempty"`

	Progress    bool   `yaml:"progress"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

var AppConfig Config

// InitConfig sets defaults and loads AppConfig from viper
func InitConfig() {
	viper.SetDefault("backup", false)
	viper.SetDefault("backup_suffix", fileops.DefaultBackupSuffix)
	viper.SetDefault("isbn_pattern", isbn.DefaultPattern)
	viper.SetDefault("rename_template", organizer.DefaultTemplate)
	viper.SetDefault("overwrite", false)
	viper.SetDefault("dry_run", false)
	viper.SetDefault("keep_directory", false)
	viper.SetDefault("provider", ProviderOpenLibrary)
	viper.SetDefault("http_timeout", 30*time.Second)
	viper.SetDefault("requests_per_minute", 100)
	viper.SetDefault("progress", false)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "text")

	AppConfig = Config{
		Backup:             viper.GetBool("backup"),
		BackupSuffix:       viper.GetString("backup_suffix"),
		ISBNPattern:        viper.GetString("isbn_pattern"),
		RenameTemplate:     viper.GetString("rename_template"),
		Overwrite:          viper.GetBool("overwrite"),
		DryRun:             viper.GetBool("dry_run"),
		KeepDirectory:      viper.GetBool("keep_directory"),
		Provider:           viper.GetString("provider"),
		OpenLibraryBaseURL: viper.GetString("openlibrary_base_url"),
		GoogleBooksBaseURL: viper.GetString("googlebooks_base_url"),
		HTTPTimeout:        viper.GetDuration("http_timeout"),
		RequestsPerMinute:  viper.GetInt("requests_per_minute"),
		UserAgent:          viper.GetString("user_agent"),
		Progress:           viper.GetBool("progress"),
		LogLevel:           strings.ToLower(strings.TrimSpace(viper.GetString("log_level"))),
		LogFormat:          strings.ToLower(strings.TrimSpace(viper.GetString("log_format"))),
		MetricsFile:        viper.GetString("metrics_file"),
	}
}

// Providers returns the provider chain in lookup order
func (c *Config) Providers() ([]string, error) {
	var providers []string
	for _, raw := range strings.Split(c.Provider, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
			continue
		case ProviderOpenLibrary, "open_library", "ol":
			providers = append(providers, ProviderOpenLibrary)
		case ProviderGoogleBooks, "google_books", "google":
			providers = append(providers, ProviderGoogleBooks)
		default:
			return nil, fmt.Errorf("unknown metadata provider %q", raw)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no metadata provider configured")
	}
	return providers, nil
}

// Validate checks settings that would otherwise fail halfway through a run
func (c *Config) Validate() error {
	if _, err := c.Providers(); err != nil {
		return err
	}
	if strings.TrimSpace(c.RenameTemplate) == "" {
		return fmt.Errorf("rename template is empty")
	}
	if c.BackupSuffix == "" {
		return fmt.Errorf("backup suffix is empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests per minute must not be negative, got %d", c.RequestsPerMinute)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
