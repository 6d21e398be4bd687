package realm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitStoreConfig configures a git-backed account store.
type GitStoreConfig struct {
	// URL is the repository URL (https or local path).
	URL string

	// Branch is the branch to track. Default: "main".
	Branch string

	// LocalPath is where the repository is checked out. Defaults to a
	// directory under the OS temp dir.
	LocalPath string

	// Token is an optional personal access token for HTTPS auth.
	Token string

	// SyncTimeout bounds each clone or pull. Default: 60s.
	SyncTimeout time.Duration
}

// GitStore keeps a local checkout of a git repository holding account
// files, for use as the backing directory of a FileRealm. Account
// changes are delivered by committing to the tracked branch and calling
// Sync (typically from a Refresher cycle via a git-backed FileRealm).
type GitStore struct {
	config GitStoreConfig

	mu     sync.Mutex
	repo   *gogit.Repository
	logger *slog.Logger
}

// NewGitStore creates a git-backed account store. The repository is not
// contacted until Sync is called.
func NewGitStore(cfg GitStoreConfig) (*GitStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = filepath.Join(os.TempDir(), "palisade-accounts")
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 60 * time.Second
	}

	return &GitStore{
		config: cfg,
		logger: slog.Default().With("component", "realm.gitstore"),
	}, nil
}

// Dir returns the local checkout directory.
func (s *GitStore) Dir() string {
	return s.config.LocalPath
}

// Sync brings the local checkout up to date: it clones the repository
// on first use and pulls the tracked branch afterwards.
func (s *GitStore) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.config.SyncTimeout)
	defer cancel()

	if s.repo == nil {
		if err := s.open(ctx); err != nil {
			return err
		}
		return nil
	}

	return s.pull(ctx)
}

// open opens an existing checkout or performs the initial clone.
func (s *GitStore) open(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to open existing checkout: %w", err)
		}
		s.repo = repo
		return s.pull(ctx)
	}

	if err := os.MkdirAll(s.config.LocalPath, 0750); err != nil {
		return fmt.Errorf("failed to create checkout directory: %w", err)
	}

	repo, err := gogit.PlainCloneContext(ctx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.URL,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Auth:          s.auth(),
	})
	if err != nil {
		return fmt.Errorf("failed to clone account repository: %w", err)
	}

	s.repo = repo
	s.logger.Info("account repository cloned",
		"url", s.config.URL,
		"branch", s.config.Branch,
		"path", s.config.LocalPath,
	)
	return nil
}

// pull fetches the latest changes on the tracked branch.
func (s *GitStore) pull(ctx context.Context) error {
	worktree, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &gogit.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Auth:          s.auth(),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull account repository: %w", err)
	}

	s.logger.Debug("account repository synced", "url", s.config.URL)
	return nil
}

// auth returns the transport auth method, or nil for anonymous access.
// Token auth follows the common forge convention of token-as-password.
func (s *GitStore) auth() transport.AuthMethod {
	if s.config.Token == "" {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "git",
		Password: s.config.Token,
	}
}
