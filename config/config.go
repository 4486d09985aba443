// Package config loads the command line configuration of the sync.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type (
	// Config is the sync configuration.
	Config struct {
		GitHub GitHubConfig `mapstructure:"github"`
		Sync   SyncConfig   `mapstructure:"sync"`
		Store  StoreConfig  `mapstructure:"store"`
		Log    LogConfig    `mapstructure:"log"`
	}

	// GitHubConfig configures the GraphQL client.
	GitHubConfig struct {
		// Token is sent as "Authorization: token <Token>"
		Token     string `mapstructure:"token" validate:"required"`
		BaseURL   string `mapstructure:"base_url" validate:"required,url"`
		UserAgent string `mapstructure:"user_agent" validate:"required"`
		PageSize  int    `mapstructure:"page_size" validate:"min=1,max=100"`
		// PageDelay is the pause between two page requests
		PageDelay       time.Duration `mapstructure:"page_delay" validate:"min=0"`
		FailOnHTTPError bool          `mapstructure:"fail_on_http_error"`
	}

	// SyncConfig selects the organization and the retry policy around a fetch.
	SyncConfig struct {
		Org        string        `mapstructure:"org" validate:"required"`
		Retries    int           `mapstructure:"retries" validate:"min=0,max=10"`
		RetryDelay time.Duration `mapstructure:"retry_delay" validate:"min=0"`
	}

	// StoreConfig locates the JSON export. An empty Path keeps the store in memory.
	StoreConfig struct {
		Path string `mapstructure:"path"`
	}

	// LogConfig configures logrus output.
	LogConfig struct {
		Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
		Format string `mapstructure:"format" validate:"oneof=text json"`
		// File enables a rotated log file in addition to stderr
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`
		MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	}
)

// flag name -> config key
var flagKeys = map[string]string{
	"token":              "github.token",
	"base-url":           "github.base_url",
	"user-agent":         "github.user_agent",
	"page-size":          "github.page_size",
	"page-delay":         "github.page_delay",
	"fail-on-http-error": "github.fail_on_http_error",
	"org":                "sync.org",
	"retries":            "sync.retries",
	"retry-delay":        "sync.retry_delay",
	"store":              "store.path",
	"log-level":          "log.level",
	"log-format":         "log.format",
	"log-file":           "log.file",
}

// Load reads the configuration from command flags, GHSYNC_ environment variables
// and an optional config file, in that order of precedence.
func Load(cmd *cobra.Command) (*Config, error) {
	var v = viper.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	v.SetEnvPrefix("GHSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultConfig(v)

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
	} else {
		v.SetConfigName(".ghsync")
		v.AddConfigPath("./")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	return populateConfig(v)
}

func populateConfig(v *viper.Viper) (*Config, error) {
	var cfg = new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its validate tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var msgs = make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return errors.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
