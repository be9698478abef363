package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"content-hub/internal/logger"
	"content-hub/internal/repository"
)

// Loader reloads the content collection.
type Loader interface {
	Load(ctx context.Context, trigger string) error
}

// AutoRefresher reloads content every interval while auto refresh is
// enabled, and on every change announced by a repository.Notifier source.
type AutoRefresher struct {
	loader   Loader
	enabled  func() bool
	notifier repository.Notifier
	interval time.Duration

	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewAutoRefresher creates an AutoRefresher. enabled is consulted before every
// scheduled refresh; notifier may be nil.
func NewAutoRefresher(loader Loader, enabled func() bool, notifier repository.Notifier, interval time.Duration) *AutoRefresher {
	return &AutoRefresher{
		loader:   loader,
		enabled:  enabled,
		notifier: notifier,
		interval: interval,
		cancel:   func() {},
	}
}

// Start launches the refresh loops. They run until Stop is called or ctx is done.
func (r *AutoRefresher) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	if r.interval > 0 {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if r.enabled() {
						r.refresh(ctx, TriggerAuto)
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	if r.notifier != nil {
		changes, err := r.notifier.Changes(ctx)
		if err != nil {
			logger.Warn("Change notifications unavailable", slog.String("error", err.Error()))
			return
		}
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for id := range changes {
				logger.WithItemID(id).Debug("Source change received")
				r.refresh(ctx, TriggerEvent)
			}
		}()
	}
}

func (r *AutoRefresher) refresh(ctx context.Context, trigger string) {
	// Load already logs and records failures.
	_ = r.loader.Load(ctx, trigger)
}

// Stop stops the refresh loops and waits for them to exit. It is safe to call
// more than once.
func (r *AutoRefresher) Stop() {
	r.stopOnce.Do(func() { r.cancel() })
	r.wg.Wait()
}
