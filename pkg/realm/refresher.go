package realm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Refreshable is implemented by realms that can reload their account
// state without restart, such as file-backed realms whose credentials
// rotate underneath them.
type Refreshable interface {
	// Refresh reloads all accounts from the backing store.
	Refresh(ctx context.Context) error
}

// Refresher reloads refreshable realms on a cron schedule.
//
// Common schedules:
//   - "0 * * * *"   - hourly
//   - "*/15 * * * *" - every 15 minutes
type Refresher struct {
	realms   []Refreshable
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
	logger   *slog.Logger
}

// NewRefresher creates a refresher for the given realms. An empty
// schedule disables scheduled refresh.
func NewRefresher(realms []Refreshable, schedule string) *Refresher {
	return &Refresher{
		realms:   realms,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "realm.refresher"),
	}
}

// Start begins scheduled refreshing. It validates the cron expression
// and runs refresh cycles until the context is cancelled or Stop is
// called. If the schedule is empty or there is nothing to refresh,
// Start does nothing.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" || len(r.realms) == 0 {
		r.logger.Info("realm refresh not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		r.runRefresh(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule realm refresh: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("realm refresher started",
		"schedule", r.schedule,
		"realms", len(r.realms),
	)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// runRefresh executes one refresh cycle across all realms.
func (r *Refresher) runRefresh(ctx context.Context) {
	r.logger.Debug("starting scheduled realm refresh")

	for _, realm := range r.realms {
		if err := realm.Refresh(ctx); err != nil {
			r.logger.Error("failed to refresh realm", "error", err)
		}
	}
}

// Stop halts scheduled refreshing. It is safe to call multiple times.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	r.cron.Stop()
	r.running = false
	r.logger.Info("realm refresher stopped")
}
