// Package realmfactory builds security realms from configuration
// declarations and registers them into the component registry.
//
// Importing this package also registers the realm integration with the
// activation presence gate: linking realmfactory into a binary is what
// makes activation.Present() report true.
package realmfactory

import (
	"context"
	"fmt"
	"log/slog"

	"palisade-hq/palisade/pkg/config"
	"palisade-hq/palisade/pkg/realm"
	"palisade-hq/palisade/pkg/registry"
	"palisade-hq/palisade/pkg/security"
	"palisade-hq/palisade/pkg/security/activation"
)

func init() {
	activation.RegisterIntegration(activation.RealmIntegrationName)
}

// New creates a realm from a configuration declaration.
//
// Supported realm types:
//   - "static": accounts declared inline in the configuration
//   - "env": credentials read from prefixed environment variables
//   - "file": one YAML account file per principal in a directory
//   - "git": a file realm over a synced git checkout
func New(cfg config.RealmConfig) (security.Realm, error) {
	slog.Debug("creating realm", "name", cfg.Name, "type", cfg.Type)

	switch cfg.Type {
	case "static":
		accounts := make([]realm.StaticAccount, len(cfg.Accounts))
		for i, account := range cfg.Accounts {
			accounts[i] = realm.StaticAccount{
				Principal:   account.Principal,
				Credentials: account.Credentials,
				Roles:       account.Roles,
				Permissions: account.Permissions,
				Enabled:     !account.Disabled,
			}
		}
		return realm.NewStaticRealm(cfg.Name, cfg.Priority, accounts), nil

	case "env":
		return realm.NewEnvRealm(cfg.Name, cfg.Priority, cfg.EnvPrefix), nil

	case "file":
		r, err := realm.NewFileRealm(cfg.Name, cfg.Priority, cfg.Path, cfg.Watch)
		if err != nil {
			return nil, fmt.Errorf("failed to create file realm %q: %w", cfg.Name, err)
		}
		return r, nil

	case "git":
		store, err := realm.NewGitStore(realm.GitStoreConfig{
			URL:         cfg.Git.URL,
			Branch:      cfg.Git.Branch,
			LocalPath:   cfg.Git.LocalPath,
			Token:       cfg.Git.Token,
			SyncTimeout: cfg.Git.SyncTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create git store for realm %q: %w", cfg.Name, err)
		}
		if err := store.Sync(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to sync account repository for realm %q: %w", cfg.Name, err)
		}
		r, err := realm.NewFileRealm(cfg.Name, cfg.Priority, store.Dir(), cfg.Watch)
		if err != nil {
			return nil, fmt.Errorf("failed to create git realm %q: %w", cfg.Name, err)
		}
		return r, nil

	default:
		return nil, fmt.Errorf("unsupported realm type %q for realm %q (supported: static, env, file, git)",
			cfg.Type, cfg.Name)
	}
}

// Populate registers the declared realms into the registry.
//
// Static and env realms are cheap and registered as ready instances.
// File and git realms touch the file system or the network, so they are
// registered as factories and constructed on first lookup, which is how
// the registry serves non-eagerly-initialized components to activation.
func Populate(reg *registry.Registry, realms []config.RealmConfig) error {
	for _, cfg := range realms {
		switch cfg.Type {
		case "static", "env":
			r, err := New(cfg)
			if err != nil {
				return err
			}
			reg.Register(cfg.Name, r)

		default:
			cfg := cfg
			reg.RegisterFactory(cfg.Name, func() (any, error) {
				return New(cfg)
			})
		}
	}

	slog.Info("realms registered", "count", len(realms))
	return nil
}
