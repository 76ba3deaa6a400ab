package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/omerorhan/currency-converter/internal/source"
	"golang.org/x/sync/errgroup"
)

// Catalog is the universe of known currencies. It is read-only once built.
type Catalog struct {
	base       CurrencyCode
	currencies map[CurrencyCode]CurrencyInfo
}

// BuildCatalog fetches the rates feed and the country file, drops the
// unsupported codes and backfills country names. Any failure is reported as
// ErrSourceUnavailable and no catalog is returned.
func BuildCatalog(ctx context.Context, rates, countries source.Source) (*Catalog, error) {
	var ratesRaw, countriesRaw []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ratesRaw, err = rates.Fetch(gctx)
		return err
	})
	g.Go(func() (err error) {
		countriesRaw, err = countries.Fetch(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrapUnavailable(err)
	}

	var env RatesEnvelope
	if err := json.Unmarshal(ratesRaw, &env); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrSourceUnavailable, rates.Describe(), err)
	}
	if env.Base == nil || normalizeCode(*env.Base) == "" {
		return nil, fmt.Errorf("%w: %s has no base", ErrSourceUnavailable, rates.Describe())
	}
	if env.Rates == nil {
		return nil, fmt.Errorf("%w: %s has no rates", ErrSourceUnavailable, rates.Describe())
	}

	var names CountriesEnvelope
	if err := json.Unmarshal(countriesRaw, &names); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrSourceUnavailable, countries.Describe(), err)
	}
	if names.Rates == nil {
		return nil, fmt.Errorf("%w: %s has no rates", ErrSourceUnavailable, countries.Describe())
	}

	return newCatalog(*env.Base, env.Rates, names.Rates), nil
}

func newCatalog(base string, rates map[string]float64, countries map[string]string) *Catalog {
	c := &Catalog{
		base:       normalizeCode(base),
		currencies: make(map[CurrencyCode]CurrencyInfo, len(rates)+1),
	}
	for code, rate := range rates {
		c.currencies[normalizeCode(code)] = CurrencyInfo{Rate: rate}
	}
	// the feed never lists its own base
	c.currencies[c.base] = CurrencyInfo{Rate: 1}

	for _, code := range unsupportedCodes {
		delete(c.currencies, code)
	}

	byCode := make(map[CurrencyCode]string, len(countries))
	for code, name := range countries {
		byCode[normalizeCode(code)] = name
	}
	for code, info := range c.currencies {
		info.Country = NoCountry
		if name, ok := byCode[code]; ok {
			info.Country = name
		}
		c.currencies[code] = info
	}
	return c
}

// Get returns the currency info for code.
func (c *Catalog) Get(code CurrencyCode) (CurrencyInfo, bool) {
	info, ok := c.currencies[normalizeCode(code)]
	return info, ok
}

func (c *Catalog) Has(code CurrencyCode) bool {
	_, ok := c.Get(code)
	return ok
}

// Base returns the currency the rates are expressed in.
func (c *Catalog) Base() CurrencyCode { return c.base }

func (c *Catalog) Len() int { return len(c.currencies) }

// Codes returns every catalog code in ascending order.
func (c *Catalog) Codes() []CurrencyCode {
	return slices.Sorted(maps.Keys(c.currencies))
}

func wrapUnavailable(err error) error {
	if errors.Is(err, ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}
