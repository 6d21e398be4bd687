package config

import "time"

// Config is the root configuration structure for a Palisade node. It
// declares the cache's regions, the security realms consulted during
// authentication, and the telemetry surface.
type Config struct {
	// Cache declares the cache's regions and storage.
	Cache CacheConfig `yaml:"cache"`

	// Security declares realm-based security. When disabled, or when no
	// realms are declared, integrated security stays off.
	Security SecurityConfig `yaml:"security"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CacheConfig declares the cache.
type CacheConfig struct {
	// Regions are the regions created at startup.
	Regions []RegionConfig `yaml:"regions"`

	// DBPath is the SQLite database file backing sqlite-stored regions.
	// Required when any region uses sqlite storage.
	DBPath string `yaml:"db_path"`
}

// RegionConfig declares one cache region.
type RegionConfig struct {
	// Name is the region's unique name.
	Name string `yaml:"name"`

	// Storage is "memory" or "sqlite". Default: "memory".
	Storage string `yaml:"storage"`
}

// SecurityConfig declares realm-based security.
type SecurityConfig struct {
	// Enabled gates the whole security integration. Default: true.
	// Disabled means the activation adapter is never constructed.
	Enabled *bool `yaml:"enabled"`

	// Realms are the realm declarations, consulted in ascending
	// priority order during authentication.
	Realms []RealmConfig `yaml:"realms"`

	// RefreshSchedule is an optional cron expression for reloading
	// refreshable realms (e.g. "0 * * * *" for hourly).
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// RealmConfig declares one security realm.
type RealmConfig struct {
	// Name is the realm's unique name.
	Name string `yaml:"name"`

	// Type is the realm type: "static", "env", "file", or "git".
	Type string `yaml:"type"`

	// Priority orders realm consultation; lower values are consulted
	// first. Realms with equal priority keep declaration order.
	Priority int `yaml:"priority"`

	// Accounts are the declared accounts of a static realm.
	Accounts []AccountConfig `yaml:"accounts"`

	// EnvPrefix is the environment variable prefix of an env realm.
	EnvPrefix string `yaml:"env_prefix"`

	// Path is the account directory of a file realm.
	Path string `yaml:"path"`

	// Watch enables fsnotify-based auto-reload for a file realm.
	Watch bool `yaml:"watch"`

	// Git configures the account repository of a git realm.
	Git GitConfig `yaml:"git"`
}

// AccountConfig declares one account of a static realm.
type AccountConfig struct {
	Principal   string   `yaml:"principal"`
	Credentials string   `yaml:"credentials"`
	Roles       []string `yaml:"roles"`
	Permissions []string `yaml:"permissions"`
	Disabled    bool     `yaml:"disabled"`
}

// GitConfig declares the account repository of a git realm.
type GitConfig struct {
	// URL is the repository URL.
	URL string `yaml:"url"`

	// Branch is the branch to track. Default: "main".
	Branch string `yaml:"branch"`

	// LocalPath is the checkout directory. Defaults to a directory
	// under the OS temp dir.
	LocalPath string `yaml:"local_path"`

	// Token is an optional personal access token for HTTPS auth.
	Token string `yaml:"token"`

	// SyncTimeout bounds each clone or pull. Default: 60s.
	SyncTimeout time.Duration `yaml:"sync_timeout"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is "debug", "info", "warn", or "error". Default: "info".
	Level string `yaml:"level"`

	// Format is "json" or "text". Default: "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled turns the metrics endpoint on. Default: false.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics listen address.
	// Default: "127.0.0.1:9090".
	ListenAddress string `yaml:"listen_address"`
}

// SecurityEnabled reports whether the security integration is enabled,
// applying the default of true when unset.
func (c *Config) SecurityEnabled() bool {
	if c.Security.Enabled == nil {
		return true
	}
	return *c.Security.Enabled
}
