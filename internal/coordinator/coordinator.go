package coordinator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/catalog-console/internal/models"
	"github.com/rogerio-castellano/catalog-console/internal/query"
)

// FetchErrorMessage is the message exposed when a fetch cycle fails.
const FetchErrorMessage = "failed to load products"

var ErrDeleteFailed = errors.New("failed to delete product")

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithURLSink mirrors every settled query into sink.
func WithURLSink(sink URLSink) Option {
	return func(c *Coordinator) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// WithOnChange registers fn to receive a snapshot after every state change.
// fn is called outside the coordinator lock, one call at a time, and must not
// block for long.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Coordinator) {
		c.onChange = fn
	}
}

// WithLogger sets the logger used for fetch failures and discarded results.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultLimit sets the page size used when Mount finds no limit in the
// query string.
func WithDefaultLimit(limit int) Option {
	return func(c *Coordinator) {
		if limit > 0 {
			c.defaultLimit = limit
		}
	}
}

// Coordinator owns the filter and pagination state of the product list and
// keeps the fetched data, loading flag and error in step with it.
type Coordinator struct {
	api          ProductsAPI
	sink         URLSink
	onChange     func(Snapshot)
	logger       *zap.Logger
	defaultLimit int

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	idle        *sync.Cond
	inflight    int
	closed      bool
	mounted     bool
	version     uint64
	generation  uint64
	cancelCycle context.CancelFunc

	desc       query.Descriptor
	products   []models.Product
	total      int
	totalKnown bool
	// totalFor holds the filters the current total was computed for.
	totalFor   models.ProductFilters
	statistics *models.ProductStats
	categories []string
	loading    bool
	errMsg     string
	// settledQuery is the last query string handed to the URL sink.
	settledQuery string
	catGen       uint64

	publishMu sync.Mutex
	delivered uint64
	mirrored  uint64
}

// New returns a coordinator backed by api. It starts in the loading state;
// nothing is fetched until Mount or a mutator is called.
func New(api ProductsAPI, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		api:          api,
		sink:         discardSink{},
		logger:       zap.NewNop(),
		defaultLimit: query.DefaultLimit,
		ctx:          ctx,
		cancel:       cancel,
		desc:         query.Default(),
		products:     []models.Product{},
		categories:   []string{},
		loading:      true,
	}
	c.idle = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	c.desc.Limit = c.defaultLimit
	return c
}

// Mount seeds the descriptor from the query string, fetches the category
// list and starts the first fetch cycle. Only the first call has an effect.
func (c *Coordinator) Mount(values url.Values) {
	c.mu.Lock()
	if c.mounted || c.closed {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.desc = query.ParseWithDefault(values, c.defaultLimit)
	c.startCategoriesLocked()
	c.startCycleLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap, nil)
}

// UpdateFilters applies changes on top of the current filters. If the
// result differs from the current filters the page goes back to 1. A fetch
// cycle is issued either way.
func (c *Coordinator) UpdateFilters(changes ...FilterChange) {
	c.mutate(func() bool {
		next := c.desc.Filters.Clone()
		for _, change := range changes {
			if change != nil {
				change(&next)
			}
		}
		if !next.Equal(c.desc.Filters) {
			c.desc.Page = query.DefaultPage
		}
		c.desc.Filters = next
		return true
	})
}

// ClearFilters removes every filter and returns to page 1.
func (c *Coordinator) ClearFilters() {
	c.mutate(func() bool {
		c.desc.Filters = models.ProductFilters{}
		c.desc.Page = query.DefaultPage
		return true
	})
}

// GoToPage moves to page when it lies within [1, TotalPages] and reports
// whether it did. Out-of-range pages change nothing. While the total for the
// current filters is still unknown every page is out of range.
func (c *Coordinator) GoToPage(page int) bool {
	return c.mutate(func() bool {
		if page < 1 || page > c.knownPagesLocked() {
			return false
		}
		c.desc.Page = page
		return true
	})
}

// ChangeItemsPerPage sets the page size and returns to page 1. Non-positive
// sizes are ignored.
func (c *Coordinator) ChangeItemsPerPage(limit int) bool {
	return c.mutate(func() bool {
		if limit <= 0 {
			return false
		}
		c.desc.Limit = limit
		c.desc.Page = query.DefaultPage
		return true
	})
}

// Refresh re-issues the fetch cycle for the current descriptor and reloads
// the category list.
func (c *Coordinator) Refresh() {
	c.mutate(func() bool {
		c.startCategoriesLocked()
		return true
	})
}

// DeleteProduct deletes id through the API and refreshes on success. On
// failure the state is left untouched and the returned error wraps
// ErrDeleteFailed.
func (c *Coordinator) DeleteProduct(ctx context.Context, id string) error {
	if err := c.api.DeleteProduct(ctx, id); err != nil {
		c.logger.Warn("delete failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	c.Refresh()
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Values returns the query string of the current descriptor.
func (c *Coordinator) Values() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.encodeLocked()
}

// encodeLocked serializes the descriptor against the coordinator's default
// page size so Mount restores it exactly.
func (c *Coordinator) encodeLocked() url.Values {
	return query.EncodeWithDefault(c.desc, c.defaultLimit)
}

// settleLocked records values as the query string of the settled state.
func (c *Coordinator) settleLocked() url.Values {
	values := c.encodeLocked()
	c.settledQuery = values.Encode()
	return values
}

// WaitIdle blocks until no fetch goroutine is running.
func (c *Coordinator) WaitIdle() {
	c.mu.Lock()
	for c.inflight > 0 {
		c.idle.Wait()
	}
	c.mu.Unlock()
}

// Close cancels every in-flight request and waits for the fetch goroutines
// to return. Later calls to mutators do nothing.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.WaitIdle()
}

// mutate runs fn under the lock and, when fn reports a change, starts a new
// fetch cycle and publishes the resulting snapshot.
func (c *Coordinator) mutate(fn func() bool) bool {
	c.mu.Lock()
	if c.closed || !fn() {
		c.mu.Unlock()
		return false
	}
	c.startCycleLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap, nil)
	return true
}

func (c *Coordinator) knownPagesLocked() int {
	if !c.totalKnown || !c.totalFor.Equal(c.desc.Filters) {
		return 0
	}
	return query.TotalPages(c.total, c.desc.Limit)
}

func (c *Coordinator) startCycleLocked() {
	if c.cancelCycle != nil {
		c.cancelCycle()
	}
	c.generation++
	if c.totalKnown {
		c.desc.Page = query.ClampPage(c.desc.Page, query.TotalPages(c.total, c.desc.Limit))
	}
	c.loading = true
	c.errMsg = ""
	c.version++

	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelCycle = cancel
	c.inflight++
	go c.runCycle(ctx, cancel, c.generation, c.desc)
}

func (c *Coordinator) runCycle(ctx context.Context, cancel context.CancelFunc, gen uint64, desc query.Descriptor) {
	defer cancel()

	var (
		page  models.PaginatedProducts
		stats models.ProductStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = c.api.GetProducts(gctx, desc.ProductQuery())
		if err != nil {
			return fmt.Errorf("get products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats, err = c.api.GetStatistics(gctx, desc.Filters)
		if err != nil {
			return fmt.Errorf("get statistics: %w", err)
		}
		return nil
	})
	err := g.Wait()

	c.mu.Lock()
	snap, values, ok := c.commitLocked(gen, page, stats, err)
	c.mu.Unlock()

	if ok {
		c.publish(snap, values)
	}
	c.done()
}

// commitLocked applies the outcome of cycle gen. It returns false when the
// cycle was superseded and nothing changed.
func (c *Coordinator) commitLocked(gen uint64, page models.PaginatedProducts, stats models.ProductStats, err error) (Snapshot, url.Values, bool) {
	if c.closed || gen != c.generation {
		c.logger.Debug("discarding superseded fetch", zap.Uint64("generation", gen), zap.Uint64("current", c.generation))
		return Snapshot{}, nil, false
	}
	c.cancelCycle = nil

	if err != nil {
		c.logger.Warn("fetch cycle failed", zap.Error(err))
		c.errMsg = FetchErrorMessage
		c.loading = false
		c.version++
		values := c.settleLocked()
		return c.snapshotLocked(), values, true
	}

	c.products = slices.Clone(page.Data)
	if c.products == nil {
		c.products = []models.Product{}
	}
	c.total = page.Total
	c.totalKnown = true
	c.totalFor = c.desc.Filters.Clone()
	c.statistics = cloneStats(&stats)
	c.loading = false
	c.errMsg = ""
	c.version++

	if clamped := query.ClampPage(c.desc.Page, query.TotalPages(c.total, c.desc.Limit)); clamped != c.desc.Page {
		c.logger.Debug("page out of range, refetching", zap.Int("page", c.desc.Page), zap.Int("clamped", clamped))
		c.startCycleLocked()
		return c.snapshotLocked(), nil, true
	}
	values := c.settleLocked()
	return c.snapshotLocked(), values, true
}

func (c *Coordinator) startCategoriesLocked() {
	if c.closed {
		return
	}
	c.catGen++
	gen := c.catGen
	c.inflight++
	go func() {
		defer c.done()

		categories, err := c.api.GetCategories(c.ctx)

		c.mu.Lock()
		if c.closed || gen != c.catGen {
			c.mu.Unlock()
			c.logger.Debug("discarding superseded categories", zap.Uint64("generation", gen))
			return
		}
		if err != nil {
			c.mu.Unlock()
			c.logger.Warn("loading categories failed", zap.Error(err))
			return
		}
		c.categories = slices.Clone(categories)
		if c.categories == nil {
			c.categories = []string{}
		}
		c.version++
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.publish(snap, nil)
	}()
}

func (c *Coordinator) done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if c.inflight == 0 {
		c.idle.Broadcast()
	}
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		Version:    c.version,
		Products:   slices.Clone(c.products),
		Statistics: cloneStats(c.statistics),
		Categories: slices.Clone(c.categories),
		Loading:    c.loading,
		Error:      c.errMsg,
		Query:      c.settledQuery,
		Filters:    c.desc.Filters.Clone(),
		Pagination: Pagination{
			CurrentPage:   c.desc.Page,
			ItemsPerPage:  c.desc.Limit,
			TotalProducts: c.total,
			TotalPages:    query.TotalPages(c.total, c.desc.Limit),
		},
	}
}

// publish hands snap to the observer and values to the URL sink unless a
// newer snapshot or query string has already been delivered.
func (c *Coordinator) publish(snap Snapshot, values url.Values) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	if values != nil && snap.Version > c.mirrored {
		c.mirrored = snap.Version
		c.sink.Replace(values)
	}
	if c.onChange != nil && snap.Version > c.delivered {
		c.delivered = snap.Version
		c.onChange(snap)
	}
}
