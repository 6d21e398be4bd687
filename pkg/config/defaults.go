package config

import "time"

// Default values applied to unset configuration fields.
const (
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultRegionStorage        = "memory"
	DefaultGitBranch            = "main"
	DefaultGitSyncTimeout       = 60 * time.Second
)

// ApplyDefaults fills unset fields with their default values. It is
// called by Load before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}

	for i := range cfg.Cache.Regions {
		if cfg.Cache.Regions[i].Storage == "" {
			cfg.Cache.Regions[i].Storage = DefaultRegionStorage
		}
	}

	for i := range cfg.Security.Realms {
		realm := &cfg.Security.Realms[i]
		if realm.Type != "git" {
			continue
		}
		if realm.Git.Branch == "" {
			realm.Git.Branch = DefaultGitBranch
		}
		if realm.Git.SyncTimeout <= 0 {
			realm.Git.SyncTimeout = DefaultGitSyncTimeout
		}
	}
}
