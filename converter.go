// Package converter keeps a user-chosen set of currencies mutually converted
// from a single exchange-rates feed, and persists the chosen set.
package converter

import (
	"context"

	"github.com/omerorhan/currency-converter/internal/service"
	"github.com/omerorhan/currency-converter/internal/source"
	"github.com/omerorhan/currency-converter/internal/storage"
)

// Client provides a clean public API for the converter service
type Client struct {
	service *service.ConverterService
}

// NewClient creates a new converter client
func NewClient(options ...ServiceOption) (*Client, error) {
	svc, err := service.NewConverterService(options...)
	if err != nil {
		return nil, err
	}

	return &Client{
		service: svc,
	}, nil
}

// Initialize fetches the catalog and restores the tracked currencies
func (c *Client) Initialize(ctx context.Context) error {
	return c.service.Initialize(ctx)
}

// Convert sets code to value and rescales every tracked currency
func (c *Client) Convert(code string, value float64) error {
	return c.service.Convert(code, value)
}

// Add starts tracking code
func (c *Client) Add(code string) error {
	return c.service.Add(code)
}

// Delete stops tracking code
func (c *Client) Delete(code string) error {
	return c.service.Delete(code)
}

// Filter restricts the rows to currencies matching text, "" shows all
func (c *Client) Filter(text string) error {
	return c.service.Filter(text)
}

// Len is the number of rows in the filtered view
func (c *Client) Len() int {
	return c.service.Len()
}

// Row returns the row at index of the filtered view
func (c *Client) Row(index int) (Row, error) {
	return c.service.Present(index)
}

// Rows returns every row of the filtered view
func (c *Client) Rows() ([]Row, error) {
	return c.service.Rows()
}

// GetRate returns the formatted amount of code, if visible in the filtered view
func (c *Client) GetRate(code string) (string, error) {
	return c.service.GetRate(code)
}

// AvailableCurrencies lists the catalog with the tracked flags
func (c *Client) AvailableCurrencies() ([]SelectionToggleEntry, error) {
	return c.service.AvailableCurrencies()
}

// NewSelection returns a toggle list over the catalog
func (c *Client) NewSelection() (*Selection, error) {
	return c.service.NewSelection()
}

// ApplySelection tracks the codes switched on and drops the ones switched off
func (c *Client) ApplySelection(sel *Selection) (added, removed []string, err error) {
	return c.service.ApplySelection(sel)
}

// Flush waits for pending persistence writes
func (c *Client) Flush() {
	c.service.Flush()
}

// Stop drains pending writes and releases the store
func (c *Client) Stop() error {
	c.service.Stop()
	return nil
}

// Service options (re-exported for convenience)
type ServiceOption = service.ServiceOption

// Re-export service options for clean API
var (
	WithRatesURL           = service.WithRatesURL
	WithCountriesPath      = service.WithCountriesPath
	WithRedisConfig        = service.WithRedisConfig
	WithStore              = service.WithStore
	WithRatesSource        = service.WithRatesSource
	WithCountriesSource    = service.WithCountriesSource
	WithInitialLoadTimeout = service.WithInitialLoadTimeout
	WithWriteTimeout       = service.WithWriteTimeout
	WithLogging            = service.WithLogging
	WithLogger             = service.WithLogger
)

// Re-export common types for convenience
type (
	Row                  = service.Row
	SelectionToggleEntry = service.SelectionToggleEntry
	Selection            = service.SelectionModel
	CurrencyInfo         = service.CurrencyInfo
	Store                = storage.Store
	Source               = source.Source
	FileSource           = source.FileSource
	WebSource            = source.WebSource
	BytesSource          = source.BytesSource
)

// NewMemoryStore keeps the tracked codes in memory only
func NewMemoryStore(codes ...string) Store { return storage.NewMemoryStore(codes...) }

// BundledCountries is the country-name file shipped with the module
func BundledCountries() Source { return source.Countries() }

// Errors reported by the client, compare with errors.Is
var (
	ErrSourceUnavailable = service.ErrSourceUnavailable
	ErrDivisionByZero    = service.ErrDivisionByZero
	ErrInvalidValue      = service.ErrInvalidValue
	ErrNotTracked        = service.ErrNotTracked
	ErrNotFound          = service.ErrNotFound
	ErrIndexOutOfRange   = service.ErrIndexOutOfRange
	ErrUnknownCurrency   = service.ErrUnknownCurrency
	ErrAlreadyTracked    = service.ErrAlreadyTracked
	ErrNotInitialized    = service.ErrNotInitialized
)
