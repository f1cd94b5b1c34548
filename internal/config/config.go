// Package config loads and validates the content pipeline configuration via Viper.
//
// Values come from the process environment first, then from a local KEY=value file, then
// from defaults. Every key is read from AREAPAGES_<SECTION>_<KEY>; the two required secrets
// also accept their conventional names (ANTHROPIC_API_KEY or GEMINI_API_KEY, DATABASE_URL).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "AREAPAGES"

// DefaultEnvFile is read when no --env-file is given.
const DefaultEnvFile = ".env.local"

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	ArchiveNone   = "none"
	ArchiveLocal  = "local"
	ArchiveGCS    = "gcs"
	ArchiveMemory = "memory"

	NotifyNone   = "none"
	NotifyPubSub = "pubsub"
	NotifyMemory = "memory"
)

var defaultModels = map[string]string{
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderGemini:    "gemini-2.5-flash",
}

var apiKeyEnv = map[string][]string{
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// Config captures every pipeline setting. It is built once at startup and passed down.
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Store     StoreConfig     `mapstructure:"store"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GeneratorConfig selects and tunes the generative backend.
type GeneratorConfig struct {
	Provider          string  `mapstructure:"provider"`
	APIKey            string  `mapstructure:"api_key"`
	BaseURL           string  `mapstructure:"base_url"`
	Model             string  `mapstructure:"model"`
	MaxTokens         int     `mapstructure:"max_tokens"`
	Temperature       float64 `mapstructure:"temperature"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	MaxAttempts       int     `mapstructure:"max_attempts"`
	BaseDelayMs       int     `mapstructure:"base_delay_ms"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// PipelineConfig controls one run.
type PipelineConfig struct {
	Concurrency   int    `mapstructure:"concurrency"`
	LocationsFile string `mapstructure:"locations_file"`
	AllowFullRun  bool   `mapstructure:"allow_full_run"`
	Limit         int    `mapstructure:"limit"`
}

// StoreConfig selects the persistence gateway.
type StoreConfig struct {
	Provider string `mapstructure:"provider"`
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int    `mapstructure:"max_conns"`
}

// ArchiveConfig controls the optional JSON archive of written records.
type ArchiveConfig struct {
	Provider string `mapstructure:"provider"`
	BaseDir  string `mapstructure:"base_dir"`
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
}

// NotifyConfig controls the optional "content generated" notifications.
type NotifyConfig struct {
	Provider  string `mapstructure:"provider"`
	ProjectID string `mapstructure:"project_id"`
	Topic     string `mapstructure:"topic"`
}

// MetricsConfig controls the Prometheus endpoint. An empty address disables it.
type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from the environment, falling back to envFile. A missing envFile is
// not an error.
func Load(envFile string) (Config, error) {
	fileValues, err := readEnvFile(envFile)
	if err != nil {
		return Config{}, err
	}
	lookup := func(name string) (string, bool) {
		if val, ok := os.LookupEnv(name); ok && val != "" {
			return val, true
		}
		val, ok := fileValues[name]
		return val, ok && val != ""
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for _, key := range v.AllKeys() {
		name := EnvName(key)
		if val, ok := os.LookupEnv(name); ok && val != "" {
			continue
		}
		if val, ok := fileValues[name]; ok {
			v.Set(key, val)
		}
	}
	fallback(v, "store.dsn", lookup, "DATABASE_URL")
	fallback(v, "generator.api_key", lookup, apiKeyEnv[strings.ToLower(v.GetString("generator.provider"))]...)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvName returns the environment variable read for a config key.
func EnvName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func readEnvFile(path string) (map[string]string, error) {
	values := make(map[string]string)
	if path == "" {
		return values, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	f := viper.New()
	f.SetConfigFile(path)
	f.SetConfigType("env")
	if err := f.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	for key, val := range f.AllSettings() {
		values[strings.ToUpper(key)] = fmt.Sprint(val)
	}
	return values, nil
}

// fallback fills key from the first conventional name that has a value, unless the key
// already has one.
func fallback(v *viper.Viper, key string, lookup func(string) (string, bool), names ...string) {
	if v.GetString(key) != "" {
		return
	}
	for _, name := range names {
		if val, ok := lookup(name); ok {
			v.Set(key, val)
			return
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("generator.provider", ProviderAnthropic)
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.max_tokens", 4096)
	v.SetDefault("generator.temperature", 0.7)
	v.SetDefault("generator.timeout_seconds", 120)
	v.SetDefault("generator.max_attempts", 3)
	v.SetDefault("generator.base_delay_ms", 2000)
	v.SetDefault("generator.requests_per_second", 0)
	v.SetDefault("pipeline.concurrency", 5)
	v.SetDefault("pipeline.locations_file", "data/locations.yaml")
	v.SetDefault("pipeline.allow_full_run", false)
	v.SetDefault("pipeline.limit", 0)
	v.SetDefault("store.provider", StorePostgres)
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.table", "location_content")
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("archive.provider", ArchiveNone)
	v.SetDefault("archive.base_dir", "")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "content")
	v.SetDefault("notify.provider", NotifyNone)
	v.SetDefault("notify.project_id", "")
	v.SetDefault("notify.topic", "")
	v.SetDefault("metrics.listen_addr", "")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "info")
}

func (c *Config) normalize() {
	c.Generator.Provider = strings.ToLower(strings.TrimSpace(c.Generator.Provider))
	c.Store.Provider = strings.ToLower(strings.TrimSpace(c.Store.Provider))
	c.Archive.Provider = strings.ToLower(strings.TrimSpace(c.Archive.Provider))
	c.Notify.Provider = strings.ToLower(strings.TrimSpace(c.Notify.Provider))
	if c.Archive.Provider == "" {
		c.Archive.Provider = ArchiveNone
	}
	if c.Notify.Provider == "" {
		c.Notify.Provider = NotifyNone
	}
	if c.Generator.Model == "" {
		c.Generator.Model = defaultModels[c.Generator.Provider]
	}
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	g := c.Generator
	if _, ok := defaultModels[g.Provider]; !ok {
		return fmt.Errorf("generator.provider must be %q or %q, got %q", ProviderAnthropic, ProviderGemini, g.Provider)
	}
	if strings.TrimSpace(g.APIKey) == "" {
		return fmt.Errorf("generator.api_key is required (set %s or %s)",
			EnvName("generator.api_key"), strings.Join(apiKeyEnv[g.Provider], " or "))
	}
	if g.MaxTokens <= 0 {
		return errors.New("generator.max_tokens must be > 0")
	}
	if g.Temperature < 0 || g.Temperature > 2 {
		return errors.New("generator.temperature must be between 0 and 2")
	}
	if g.TimeoutSeconds <= 0 {
		return errors.New("generator.timeout_seconds must be > 0")
	}
	if g.MaxAttempts <= 0 {
		return errors.New("generator.max_attempts must be > 0")
	}
	if g.BaseDelayMs < 0 {
		return errors.New("generator.base_delay_ms must be >= 0")
	}
	if g.RequestsPerSecond < 0 {
		return errors.New("generator.requests_per_second must be >= 0")
	}

	if c.Pipeline.Concurrency <= 0 {
		return errors.New("pipeline.concurrency must be > 0")
	}
	if c.Pipeline.Limit < 0 {
		return errors.New("pipeline.limit must be >= 0")
	}
	if strings.TrimSpace(c.Pipeline.LocationsFile) == "" {
		return errors.New("pipeline.locations_file is required")
	}

	switch c.Store.Provider {
	case StorePostgres, StoreSQLite:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for %s (set %s or DATABASE_URL)", c.Store.Provider, EnvName("store.dsn"))
		}
	case StoreMemory:
	default:
		return fmt.Errorf("store.provider %q is not supported", c.Store.Provider)
	}
	if c.Store.MaxConns < 0 {
		return errors.New("store.max_conns must be >= 0")
	}

	switch c.Archive.Provider {
	case ArchiveNone, ArchiveMemory:
	case ArchiveLocal:
		if strings.TrimSpace(c.Archive.BaseDir) == "" {
			return errors.New("archive.base_dir is required for the local archive")
		}
	case ArchiveGCS:
		if strings.TrimSpace(c.Archive.Bucket) == "" {
			return errors.New("archive.bucket is required for the gcs archive")
		}
	default:
		return fmt.Errorf("archive.provider %q is not supported", c.Archive.Provider)
	}

	switch c.Notify.Provider {
	case NotifyNone:
	case NotifyMemory:
		if c.Notify.Topic == "" {
			return errors.New("notify.topic is required for the memory publisher")
		}
	case NotifyPubSub:
		if c.Notify.ProjectID == "" || c.Notify.Topic == "" {
			return errors.New("notify.project_id and notify.topic are required for pubsub")
		}
	default:
		return fmt.Errorf("notify.provider %q is not supported", c.Notify.Provider)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// RequestTimeout is the per-call timeout for the generative API.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Generator.TimeoutSeconds) * time.Second
}

// BaseDelay is the retry backoff unit.
func (c Config) BaseDelay() time.Duration {
	return time.Duration(c.Generator.BaseDelayMs) * time.Millisecond
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Generator.APIKey != "" {
		c.Generator.APIKey = "REDACTED"
	}
	if c.Store.DSN != "" && c.Store.Provider == StorePostgres {
		c.Store.DSN = "REDACTED"
	}
	return c
}
