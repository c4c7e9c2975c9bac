package admin

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Apurer/coffee-admin/internal/platform/observability"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// EnvPrefix namespaces environment overrides, e.g. COFFEE_API_URL.
const EnvPrefix = "COFFEE"

// Output formats for command results.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// S3Config selects where s3:// image references are read from.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// Config is the admin client configuration, merged from flags, COFFEE_*
// environment variables and an optional YAML file.
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	PageSize    int           `mapstructure:"page_size"`
	MessageTTL  time.Duration `mapstructure:"message_ttl"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	DraftsDir   string        `mapstructure:"drafts_dir"`
	Output      string        `mapstructure:"output"`
	LogLevel    string        `mapstructure:"log_level"`
	Exporter    string        `mapstructure:"trace_exporter"`
	S3          S3Config      `mapstructure:"s3"`
}

// NewViper returns a viper instance with defaults, env binding and the
// config file search path set. The file is read by LoadConfig.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("page_size", listview.DefaultPageSize)
	v.SetDefault("message_ttl", resource.DefaultMessageTTL)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("drafts_dir", defaultDraftsDir())
	v.SetDefault("output", OutputTable)
	v.SetDefault("log_level", "warn")
	v.SetDefault("trace_exporter", observability.ExporterNone)
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)
	v.SetDefault("api_url", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file := os.Getenv(EnvPrefix + "_CONFIG"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("coffee-admin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/coffee-admin")
		}
	}
	return v
}

// LoadConfig reads the config file when present and validates the result.
func LoadConfig(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings that would otherwise fail on first use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url is required (flag --api-url or %s_API_URL)", EnvPrefix)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q must be an absolute URL", c.APIURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output must be table, json or yaml, got %q", c.Output)
	}
	return nil
}

func defaultDraftsDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + "/coffee-admin/drafts"
	}
	return ".coffee-admin/drafts"
}
