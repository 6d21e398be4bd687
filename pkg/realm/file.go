package realm

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"palisade-hq/palisade/pkg/security"
)

// accountFile is the on-disk YAML shape of one account.
type accountFile struct {
	Credentials string   `yaml:"credentials"`
	Roles       []string `yaml:"roles"`
	Permissions []string `yaml:"permissions"`
	Disabled    bool     `yaml:"disabled"`
}

// FileRealm authenticates against account files in a directory, one
// YAML file per principal ("<principal>.yaml"). File permissions must
// be 0600 or 0400; anything more permissive is rejected.
//
// This layout supports Kubernetes-style secret mounting and git-backed
// account stores. When watching is enabled the realm reloads accounts
// automatically as files change; it also implements Refreshable so a
// Refresher can reload it on a schedule.
type FileRealm struct {
	name     string
	priority int
	basePath string
	watch    bool

	mu       sync.RWMutex
	accounts map[string]accountFile
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *slog.Logger
}

// NewFileRealm creates a file-backed realm over the given directory.
// If watch is enabled, the realm monitors the directory and reloads
// accounts when files change.
func NewFileRealm(name string, priority int, basePath string, watch bool) (*FileRealm, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat account directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("account path is not a directory: %s", basePath)
	}

	r := &FileRealm{
		name:     name,
		priority: priority,
		basePath: basePath,
		watch:    watch,
		accounts: make(map[string]accountFile),
		stopCh:   make(chan struct{}),
		logger:   slog.Default().With("component", "realm.file", "realm", name),
	}

	if err := r.Refresh(context.Background()); err != nil {
		return nil, err
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := watcher.Add(basePath); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch account directory: %w", err)
		}

		r.watcher = watcher
		go r.watchLoop()

		r.logger.Info("file realm started with watching", "path", basePath)
	} else {
		r.logger.Info("file realm started without watching", "path", basePath)
	}

	return r, nil
}

// Name returns the realm's name.
func (r *FileRealm) Name() string {
	return r.name
}

// Priority returns the realm's consultation priority.
func (r *FileRealm) Priority() int {
	return r.priority
}

// Supports reports whether an account is loaded for the token's principal.
func (r *FileRealm) Supports(token security.AuthenticationToken) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[token.Principal]
	return ok
}

// Authenticate checks the token's credentials against the loaded account.
func (r *FileRealm) Authenticate(ctx context.Context, token security.AuthenticationToken) (*security.Account, error) {
	r.mu.RLock()
	account, ok := r.accounts[token.Principal]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown principal %q", token.Principal)
	}

	if account.Disabled {
		return nil, fmt.Errorf("account %q is disabled", token.Principal)
	}

	if subtle.ConstantTimeCompare([]byte(account.Credentials), []byte(token.Credentials)) != 1 {
		return nil, fmt.Errorf("invalid credentials for principal %q", token.Principal)
	}

	return &security.Account{
		Principal:   token.Principal,
		Realm:       r.name,
		Roles:       append([]string(nil), account.Roles...),
		Permissions: append([]string(nil), account.Permissions...),
	}, nil
}

// Authorize grants the permission if the account's grants imply it.
func (r *FileRealm) Authorize(ctx context.Context, account *security.Account, permission string) bool {
	return account.HasPermission(permission)
}

// Refresh reloads all account files from the directory, replacing the
// in-memory set.
func (r *FileRealm) Refresh(ctx context.Context) error {
	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return fmt.Errorf("failed to read account directory: %w", err)
	}

	accounts := make(map[string]accountFile)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		principal := strings.TrimSuffix(name, ext)
		account, err := r.loadAccountFile(filepath.Join(r.basePath, name))
		if err != nil {
			r.logger.Warn("skipping account file", "file", name, "error", err)
			continue
		}
		accounts[principal] = account
	}

	r.mu.Lock()
	r.accounts = accounts
	r.mu.Unlock()

	r.logger.Debug("accounts reloaded", "count", len(accounts))
	return nil
}

// loadAccountFile reads and parses one account file, enforcing strict
// file permissions.
func (r *FileRealm) loadAccountFile(path string) (accountFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return accountFile{}, fmt.Errorf("failed to stat account file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return accountFile{}, fmt.Errorf("not a regular file")
	}

	mode := info.Mode().Perm()
	if mode != 0600 && mode != 0400 {
		return accountFile{}, fmt.Errorf("insecure permissions %o (expected 0600 or 0400)", mode)
	}

	// #nosec G304 - path is constructed from the validated base directory
	data, err := os.ReadFile(path)
	if err != nil {
		return accountFile{}, fmt.Errorf("failed to read account file: %w", err)
	}

	var account accountFile
	if err := yaml.Unmarshal(data, &account); err != nil {
		return accountFile{}, fmt.Errorf("failed to parse account file: %w", err)
	}

	return account, nil
}

// watchLoop processes file system events until Close is called.
func (r *FileRealm) watchLoop() {
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				r.logger.Debug("account directory changed", "event", event.String())
				if err := r.Refresh(context.Background()); err != nil {
					r.logger.Error("failed to reload accounts", "error", err)
				}
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error("file watcher error", "error", err)

		case <-r.stopCh:
			return
		}
	}
}

// Close stops the file watcher, if one was started.
func (r *FileRealm) Close() error {
	var err error
	r.stopOnce.Do(func() {
		close(r.stopCh)
		if r.watcher != nil {
			err = r.watcher.Close()
		}
	})
	return err
}
