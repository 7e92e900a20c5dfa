// Package dashboard holds the view models behind the home page and the
// landlord, agent and admin dashboards. A view is mounted once, fetches its
// data concurrently, and drops any result that lands after it is unmounted.
package dashboard

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
)

// Backend is the part of the gateway the views use.
type Backend interface {
	ListProducts(ctx context.Context) ([]models.Property, error)
	ListMyProducts(ctx context.Context) ([]models.Property, error)
	ListProductsByLogin(ctx context.Context, creds gateway.Credentials) ([]models.Property, error)
	ListInquiries(ctx context.Context, propertyID string) ([]models.Inquiry, error)
	BoostPlans(ctx context.Context) ([]models.BoostPlan, error)
	CreateProduct(ctx context.Context, draft models.ProductDraft) (*gateway.Response, error)
	UpdateProduct(ctx context.Context, id string, draft models.ProductDraft) (*gateway.Response, error)
	DeleteProduct(ctx context.Context, id string, creds *gateway.Credentials) (*gateway.Response, error)
	SetAvailability(ctx context.Context, id string, availability models.Availability) (*gateway.Response, error)
	InitiateBoost(ctx context.Context, productID, planID string) (*gateway.Response, error)
	UploadImage(ctx context.Context, productID, filename string, r io.Reader) ([]string, error)
}

// view is the lifetime shared by every dashboard. Fields of the embedding
// view that fetches write to are guarded by mu.
type view struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
	logger *slog.Logger
}

func (v *view) init(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	v.logger = logger
}

// start records the mount context. It reports false when the view was
// already mounted or unmounted.
func (v *view) start(ctx context.Context) (context.Context, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.ctx != nil {
		return nil, false
	}
	v.ctx, v.cancel = context.WithCancel(ctx)
	return v.ctx, true
}

// Wait blocks until every fetch started by Mount has finished.
func (v *view) Wait() {
	v.wg.Wait()
}

// Unmount cancels in-flight fetches. Results that arrive afterwards are
// discarded.
func (v *view) Unmount() {
	v.mu.Lock()
	v.closed = true
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (v *view) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// apply runs fn under the view lock unless the view is gone. It reports
// whether fn ran.
func (v *view) apply(ctx context.Context, fn func()) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// spawn runs one fetch in its own goroutine. A failure is logged and leaves
// the target untouched; so does a result that arrives after teardown.
func spawn[T any](v *view, ctx context.Context, name string, fetch func(context.Context) (T, error), set func(T)) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		val, err := fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			v.logger.Warn("dashboard fetch failed", "fetch", name, "err", err)
			return
		}
		if !v.apply(ctx, func() { set(val) }) {
			v.logger.Debug("dropping late result", "fetch", name)
		}
	}()
}
