package config

import "fmt"

// validRealmTypes enumerates the realm types realmfactory can build.
var validRealmTypes = map[string]bool{
	"static": true,
	"env":    true,
	"file":   true,
	"git":    true,
}

// Validate checks the configuration for errors. It returns the first
// error encountered.
func Validate(cfg *Config) error {
	if err := validateCache(&cfg.Cache); err != nil {
		return err
	}
	if err := validateSecurity(&cfg.Security); err != nil {
		return err
	}
	return validateTelemetry(&cfg.Telemetry)
}

func validateCache(cfg *CacheConfig) error {
	seen := make(map[string]bool)
	needsDB := false

	for _, region := range cfg.Regions {
		if region.Name == "" {
			return fmt.Errorf("cache: region name cannot be empty")
		}
		if seen[region.Name] {
			return fmt.Errorf("cache: duplicate region %q", region.Name)
		}
		seen[region.Name] = true

		switch region.Storage {
		case "memory":
		case "sqlite":
			needsDB = true
		default:
			return fmt.Errorf("cache: region %q has unsupported storage %q (supported: memory, sqlite)",
				region.Name, region.Storage)
		}
	}

	if needsDB && cfg.DBPath == "" {
		return fmt.Errorf("cache: db_path is required when any region uses sqlite storage")
	}

	return nil
}

func validateSecurity(cfg *SecurityConfig) error {
	seen := make(map[string]bool)

	for _, realm := range cfg.Realms {
		if realm.Name == "" {
			return fmt.Errorf("security: realm name cannot be empty")
		}
		if seen[realm.Name] {
			return fmt.Errorf("security: duplicate realm %q", realm.Name)
		}
		seen[realm.Name] = true

		if !validRealmTypes[realm.Type] {
			return fmt.Errorf("security: realm %q has unsupported type %q (supported: static, env, file, git)",
				realm.Name, realm.Type)
		}

		switch realm.Type {
		case "static":
			for _, account := range realm.Accounts {
				if account.Principal == "" {
					return fmt.Errorf("security: realm %q declares an account with no principal", realm.Name)
				}
			}
		case "env":
			if realm.EnvPrefix == "" {
				return fmt.Errorf("security: env realm %q requires env_prefix", realm.Name)
			}
		case "file":
			if realm.Path == "" {
				return fmt.Errorf("security: file realm %q requires path", realm.Name)
			}
		case "git":
			if realm.Git.URL == "" {
				return fmt.Errorf("security: git realm %q requires git.url", realm.Name)
			}
		}
	}

	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry: invalid log level %q (supported: debug, info, warn, error)",
			cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry: invalid log format %q (supported: json, text)",
			cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		return fmt.Errorf("telemetry: metrics listen_address cannot be empty when metrics are enabled")
	}

	return nil
}
