package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omerorhan/currency-converter/internal/source"
	"github.com/omerorhan/currency-converter/internal/storage"
	"go.uber.org/zap"
)

// ConverterService builds the catalog, restores the tracked set and keeps
// the persisted selection in sync in the background.
type ConverterService struct {
	opts    *ServiceOptions
	store   storage.Store
	journal *storeJournal
	logger  *zap.SugaredLogger

	mu          sync.RWMutex
	catalog     *Catalog
	tracked     *TrackedSet
	initialized bool
	stopped     bool
}

// ServiceOptions provides configuration for the converter service
type ServiceOptions struct {
	RatesURL           string        `json:"ratesUrl"`
	RatesBasicAuth     string        `json:"ratesBasicAuth"`
	CountriesPath      string        `json:"countriesPath"`
	RedisAddr          string        `json:"redisAddr"`
	InitialLoadTimeout time.Duration `json:"initialLoadTimeout"`
	WriteTimeout       time.Duration `json:"writeTimeout"`
	EnableLogging      bool          `json:"enableLogging"`

	Logger          *zap.Logger   `json:"-"`
	Store           storage.Store `json:"-"`
	RatesSource     source.Source `json:"-"`
	CountriesSource source.Source `json:"-"`
}

// DefaultServiceOptions returns sensible default options
func DefaultServiceOptions() *ServiceOptions {
	return &ServiceOptions{
		InitialLoadTimeout: defaultInitialLoadTimeout,
		WriteTimeout:       defaultWriteTimeout,
		EnableLogging:      true,
	}
}

// ServiceOption is a function that configures service options
type ServiceOption func(*ServiceOptions)

// WithRatesURL sets the rates feed address and its optional "user:pass"
func WithRatesURL(url, auth string) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.RatesURL = url
		opts.RatesBasicAuth = auth
	}
}

// WithCountriesPath reads country names from a file instead of the bundled one
func WithCountriesPath(path string) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.CountriesPath = path
	}
}

// WithRedisConfig persists the tracked codes in Redis
func WithRedisConfig(addr string) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.RedisAddr = addr
	}
}

func WithStore(store storage.Store) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.Store = store
	}
}

func WithRatesSource(src source.Source) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.RatesSource = src
	}
}

func WithCountriesSource(src source.Source) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.CountriesSource = src
	}
}

func WithInitialLoadTimeout(d time.Duration) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.InitialLoadTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.WriteTimeout = d
	}
}

// WithLogging enables/disables logging
func WithLogging(enabled bool) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.EnableLogging = enabled
	}
}

func WithLogger(logger *zap.Logger) ServiceOption {
	return func(opts *ServiceOptions) {
		opts.Logger = logger
	}
}

// NewConverterService creates the service. Nothing is fetched until Initialize.
func NewConverterService(options ...ServiceOption) (*ConverterService, error) {
	opts := DefaultServiceOptions()

	// Apply options
	for _, option := range options {
		option(opts)
	}

	if opts.RatesSource == nil {
		if opts.RatesURL == "" {
			return nil, fmt.Errorf("no rates source configured")
		}
		opts.RatesSource = source.WebSource{URL: opts.RatesURL, BasicAuth: opts.RatesBasicAuth}
	}
	if opts.CountriesSource == nil {
		opts.CountriesSource = source.Countries()
		if opts.CountriesPath != "" {
			opts.CountriesSource = source.FileSource{Path: opts.CountriesPath}
		}
	}

	logger := zap.NewNop()
	if opts.EnableLogging {
		logger = opts.Logger
		if logger == nil {
			var err error
			if logger, err = zap.NewProduction(); err != nil {
				return nil, fmt.Errorf("failed to create logger: %w", err)
			}
		}
	}
	sugar := logger.Sugar().Named("converter")

	store := opts.Store
	if store == nil {
		if opts.RedisAddr != "" {
			rs, err := storage.NewRedisStore(opts.RedisAddr)
			if err != nil {
				return nil, fmt.Errorf("failed to create Redis store: %w", err)
			}
			store = rs
		} else {
			store = storage.NewMemoryStore()
		}
	}

	return &ConverterService{
		opts:   opts,
		store:  store,
		logger: sugar,
	}, nil
}

// Initialize builds the catalog and restores the tracked set. A catalog
// failure leaves the service uninitialized, call Initialize again to retry.
func (cs *ConverterService) Initialize(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.initialized {
		return nil
	}
	if cs.stopped {
		return fmt.Errorf("service stopped")
	}

	cs.log("🚀 Initializing Converter Service...")

	loadCtx, cancel := context.WithTimeout(ctx, cs.opts.InitialLoadTimeout)
	defer cancel()

	catalog, err := BuildCatalog(loadCtx, cs.opts.RatesSource, cs.opts.CountriesSource)
	if err != nil {
		cs.log("❌ Failed to build catalog from %s: %v", cs.opts.RatesSource.Describe(), err)
		return err
	}
	cs.log("✅ Catalog built: %d currencies, base %s", catalog.Len(), catalog.Base())

	var journal Journal
	cs.journal = newStoreJournal(cs.store, cs.opts.WriteTimeout, cs.logger)
	journal = cs.journal

	persisted, err := cs.store.ListAll(loadCtx)
	if err != nil {
		// seeding still happens, but only in memory: the store may hold a selection we could not read
		cs.logger.Warnf("failed to list persisted currencies, using the default pack: %v", err)
		journal = discardJournal{}
	}

	tracked := NewTrackedSet(catalog, journal)
	tracked.Load(persisted)
	if err != nil {
		tracked.journal = cs.journal
	}

	cs.catalog = catalog
	cs.tracked = tracked
	cs.initialized = true
	cs.log("✅ Converter Service initialized, tracking %v", tracked.Codes())
	return nil
}

// Stop drains pending persistence writes and closes the store
func (cs *ConverterService) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.stopped {
		return
	}
	cs.log("🛑 Stopping Converter Service...")

	if cs.journal != nil {
		cs.journal.Close()
	}
	if err := cs.store.Close(); err != nil {
		cs.logger.Warnf("failed to close store: %v", err)
	}
	cs.stopped = true
	cs.initialized = false
	_ = cs.logger.Sync()

	cs.log("✅ Converter Service stopped")
}

// Flush waits until every persistence write issued so far is applied.
func (cs *ConverterService) Flush() {
	cs.mu.RLock()
	j := cs.journal
	cs.mu.RUnlock()
	if j != nil {
		j.Flush()
	}
}

func (cs *ConverterService) Convert(code CurrencyCode, value float64) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.initialized {
		return ErrNotInitialized
	}
	return cs.tracked.Convert(code, value)
}

func (cs *ConverterService) Add(code CurrencyCode) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.initialized {
		return ErrNotInitialized
	}
	if err := cs.tracked.Add(code); err != nil {
		return err
	}
	cs.log("➕ Tracking %s", normalizeCode(code))
	return nil
}

func (cs *ConverterService) Delete(code CurrencyCode) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.initialized {
		return ErrNotInitialized
	}
	if err := cs.tracked.Delete(code); err != nil {
		return err
	}
	cs.log("➖ Stopped tracking %s", normalizeCode(code))
	return nil
}

func (cs *ConverterService) Filter(text string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.initialized {
		return ErrNotInitialized
	}
	cs.tracked.Filter(text)
	return nil
}

// Len is the number of rows in the current filtered view, 0 before Initialize.
func (cs *ConverterService) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.initialized {
		return 0
	}
	return cs.tracked.Len()
}

func (cs *ConverterService) Present(index int) (Row, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.initialized {
		return Row{}, ErrNotInitialized
	}
	return cs.tracked.Present(index)
}

// Rows presents the whole filtered view under one read lock.
func (cs *ConverterService) Rows() ([]Row, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.initialized {
		return nil, ErrNotInitialized
	}
	rows := make([]Row, 0, cs.tracked.Len())
	for i := 0; i < cs.tracked.Len(); i++ {
		row, err := cs.tracked.Present(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (cs *ConverterService) GetRate(code CurrencyCode) (string, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.initialized {
		return "", ErrNotInitialized
	}
	return cs.tracked.GetRate(code)
}

func (cs *ConverterService) Entries() ([]TrackedEntry, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.initialized {
		return nil, ErrNotInitialized
	}
	return cs.tracked.Entries(), nil
}

func (cs *ConverterService) AvailableCurrencies() ([]SelectionToggleEntry, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if !cs.initialized {
		return nil, ErrNotInitialized
	}
	return cs.tracked.AvailableCurrencies(), nil
}

// NewSelection snapshots the catalog with the tracked flags into a toggle list.
func (cs *ConverterService) NewSelection() (*SelectionModel, error) {
	entries, err := cs.AvailableCurrencies()
	if err != nil {
		return nil, err
	}
	return NewSelectionModel(entries), nil
}

// ApplySelection tracks every code switched on in sel and drops every code
// switched off. It returns the codes added and removed.
func (cs *ConverterService) ApplySelection(sel *SelectionModel) (added, removed []CurrencyCode, err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if !cs.initialized {
		return nil, nil, ErrNotInitialized
	}

	for _, e := range sel.Entries() {
		switch tracked := cs.tracked.IsTracked(e.Code); {
		case e.On && !tracked:
			if err := cs.tracked.Add(e.Code); err != nil {
				return added, removed, err
			}
			added = append(added, e.Code)
		case !e.On && tracked:
			if err := cs.tracked.Delete(e.Code); err != nil {
				return added, removed, err
			}
			removed = append(removed, e.Code)
		}
	}
	if len(added)+len(removed) > 0 {
		cs.log("🔄 Selection applied: +%v -%v", added, removed)
	}
	return added, removed, nil
}

// Catalog returns the catalog, nil before Initialize.
func (cs *ConverterService) Catalog() *Catalog {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.catalog
}

func (cs *ConverterService) log(format string, args ...interface{}) {
	if cs.opts.EnableLogging {
		cs.logger.Infof(format, args...)
	}
}

// discardJournal drops every op.
type discardJournal struct{}

func (discardJournal) Insert(CurrencyCode) {}
func (discardJournal) Delete(CurrencyCode) {}
