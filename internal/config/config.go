package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "CATALOG_CONFIG_FILE"

// Config holds all settings shared by the catalogctl commands.
// Values are resolved in three layers: built-in defaults, then an optional
// YAML file pointed at by CATALOG_CONFIG_FILE, then CATALOG_* env overrides.
type Config struct {
	LogLevel  string `yaml:"logLevel"`  // "debug" | "info" | "warn" | "error"
	PrettyLog bool   `yaml:"prettyLog"` // true => zap dev (color), false => zap prod (JSON)

	Probe  ProbeConfig  `yaml:"probe"`
	Forms  FormsConfig  `yaml:"forms"`
	Redis  RedisConfig  `yaml:"redis"`
	Server ServerConfig `yaml:"server"`
}

// ProbeConfig controls the accessibility sweep.
type ProbeConfig struct {
	Timeout       Duration `yaml:"timeout"`       // per-request timeout (default 10s)
	Retries       int      `yaml:"retries"`       // extra attempts on transport errors (default 2)
	Workers       int      `yaml:"workers"`       // bounded probe pool size (default 10)
	RecheckWindow Duration `yaml:"recheckWindow"` // skip records checked within this window (default 24h)
	UserAgent     string   `yaml:"userAgent"`
}

// FormsConfig controls fetching of submission exports.
type FormsConfig struct {
	FetchTimeout Duration `yaml:"fetchTimeout"` // timeout for downloading an export URL (default 30s)
}

// RedisConfig describes the optional probe-result cache.
// An empty Addr disables the cache entirely.
type RedisConfig struct {
	Addr           string   `yaml:"addr"`
	User           string   `yaml:"user"`
	Password       string   `yaml:"password"`
	DB             int      `yaml:"db"`
	DialTimeout    Duration `yaml:"dialTimeout"`
	ReadTimeout    Duration `yaml:"readTimeout"`
	WriteTimeout   Duration `yaml:"writeTimeout"`
	ConnectTimeout Duration `yaml:"connectTimeout"` // total time to retry connecting
	RetryInterval  Duration `yaml:"retryInterval"`  // initial wait between retries, grows exponentially
	MaxWait        Duration `yaml:"maxWait"`        // cap on the wait between retries
	PingTimeout    Duration `yaml:"pingTimeout"`
	PoolSize       int      `yaml:"poolSize"`
}

// ServerConfig applies to the serve command only.
type ServerConfig struct {
	ListenAddr      string   `yaml:"listenAddr"` // ex: ":8080"
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// Enabled reports whether the probe cache is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// Load resolves the configuration from defaults, file, and environment.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.Probe.Workers < 1 {
		return nil, fmt.Errorf("probe worker count must be >= 1, got %d", cfg.Probe.Workers)
	}
	if cfg.Probe.Retries < 0 {
		return nil, fmt.Errorf("probe retries must be >= 0, got %d", cfg.Probe.Retries)
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		PrettyLog: true,
		Probe: ProbeConfig{
			Timeout:       Duration(10 * time.Second),
			Retries:       2,
			Workers:       10,
			RecheckWindow: Duration(24 * time.Hour),
			UserAgent:     "TrustedDataNow-AccessibilityChecker/1.0",
		},
		Forms: FormsConfig{
			FetchTimeout: Duration(30 * time.Second),
		},
		Redis: RedisConfig{
			DialTimeout:    Duration(5 * time.Second),
			ReadTimeout:    Duration(3 * time.Second),
			WriteTimeout:   Duration(3 * time.Second),
			ConnectTimeout: Duration(10 * time.Second),
			RetryInterval:  Duration(1 * time.Second),
			MaxWait:        Duration(5 * time.Second),
			PingTimeout:    Duration(2 * time.Second),
			PoolSize:       10,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ShutdownTimeout: Duration(5 * time.Second),
		},
	}
}

func (c *Config) applyEnvOverrides() {
	c.LogLevel = getenv("CATALOG_LOG_LEVEL", c.LogLevel)
	c.PrettyLog = mustBool("CATALOG_PRETTY_LOG", c.PrettyLog)

	c.Probe.Timeout = mustDuration("CATALOG_PROBE_TIMEOUT", c.Probe.Timeout)
	c.Probe.Retries = getenvInt("CATALOG_PROBE_RETRIES", c.Probe.Retries)
	c.Probe.Workers = getenvInt("CATALOG_PROBE_WORKERS", c.Probe.Workers)
	c.Probe.RecheckWindow = mustDuration("CATALOG_RECHECK_WINDOW", c.Probe.RecheckWindow)
	c.Probe.UserAgent = getenv("CATALOG_PROBE_USER_AGENT", c.Probe.UserAgent)

	c.Forms.FetchTimeout = mustDuration("CATALOG_FORMS_FETCH_TIMEOUT", c.Forms.FetchTimeout)

	c.Redis.Addr = getenv("CATALOG_REDIS_ADDR", c.Redis.Addr)
	c.Redis.User = getenv("CATALOG_REDIS_USERNAME", c.Redis.User)
	c.Redis.Password = getenv("CATALOG_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getenvInt("CATALOG_REDIS_DB", c.Redis.DB)
	c.Redis.PoolSize = getenvInt("CATALOG_REDIS_POOL_SIZE", c.Redis.PoolSize)

	c.Server.ListenAddr = getenv("CATALOG_LISTEN_ADDR", c.Server.ListenAddr)
	c.Server.ShutdownTimeout = mustDuration("CATALOG_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
}

// Duration is a time.Duration that unmarshals from YAML strings like "10s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// env helpers

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def Duration) Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return Duration(d)
		}
	}
	return def
}
