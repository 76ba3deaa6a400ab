package service

import (
	"context"
	"errors"
	"testing"

	"github.com/omerorhan/currency-converter/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bytesSource(name, payload string) source.Source {
	return source.BytesSource{Name: name, Data: []byte(payload)}
}

type failingSource struct{ err error }

func (f failingSource) Fetch(context.Context) ([]byte, error) { return nil, f.err }
func (f failingSource) Describe() string                      { return "failing" }

const testCountries = `{"rates":{"USD":"United States","EUR":"European Union","GBP":"United Kingdom","UAH":"Ukraine","RUB":"Russia","AUD":"Australia","JPY":"Japan"}}`

func TestBuildCatalog_BaseAndRates(t *testing.T) {
	c, err := BuildCatalog(context.Background(),
		bytesSource("rates", `{"base":"USD","rates":{"EUR":0.9}}`),
		bytesSource("countries", testCountries),
	)
	require.NoError(t, err)

	assert.Equal(t, "USD", c.Base())
	assert.Equal(t, 2, c.Len())

	usd, ok := c.Get("USD")
	require.True(t, ok)
	assert.Equal(t, CurrencyInfo{Country: "United States", Rate: 1.0}, usd)

	eur, ok := c.Get("eur")
	require.True(t, ok)
	assert.Equal(t, CurrencyInfo{Country: "European Union", Rate: 0.9}, eur)

	assert.Equal(t, []CurrencyCode{"EUR", "USD"}, c.Codes())
}

func TestBuildCatalog_DropsUnsupportedCodes(t *testing.T) {
	c, err := BuildCatalog(context.Background(),
		bytesSource("rates", `{"base":"EUR","rates":{"USD":1.1,"XAU":0.0005,"XAG":0.04,"CNH":7.8,"GGP":0.86,"IMP":0.86,"JEP":0.86,"XPD":0.001,"XPF":119.3,"XPT":0.001,"ZMK":5000,"SHP":0.86}}`),
		bytesSource("countries", testCountries),
	)
	require.NoError(t, err)

	for _, code := range unsupportedCodes {
		_, ok := c.Get(code)
		assert.False(t, ok, code)
	}
	assert.Equal(t, []CurrencyCode{"EUR", "USD"}, c.Codes())
}

func TestBuildCatalog_MissingCountry(t *testing.T) {
	c, err := BuildCatalog(context.Background(),
		bytesSource("rates", `{"base":"USD","rates":{"BTN":83.1}}`),
		bytesSource("countries", testCountries),
	)
	require.NoError(t, err)

	btn, ok := c.Get("BTN")
	require.True(t, ok)
	assert.Equal(t, NoCountry, btn.Country)
	assert.Equal(t, 83.1, btn.Rate)
}

func TestBuildCatalog_BaseOverridesListedRate(t *testing.T) {
	c, err := BuildCatalog(context.Background(),
		bytesSource("rates", `{"base":"usd","rates":{"USD":3,"EUR":0.9}}`),
		bytesSource("countries", testCountries),
	)
	require.NoError(t, err)

	usd, _ := c.Get("USD")
	assert.Equal(t, 1.0, usd.Rate)
}

func TestBuildCatalog_Errors(t *testing.T) {
	tests := []struct {
		name      string
		rates     source.Source
		countries source.Source
	}{
		{"missing base", bytesSource("rates", `{"rates":{"EUR":0.9}}`), bytesSource("c", testCountries)},
		{"empty base", bytesSource("rates", `{"base":"","rates":{"EUR":0.9}}`), bytesSource("c", testCountries)},
		{"missing rates", bytesSource("rates", `{"base":"USD"}`), bytesSource("c", testCountries)},
		{"rates not numbers", bytesSource("rates", `{"base":"USD","rates":{"EUR":"x"}}`), bytesSource("c", testCountries)},
		{"rates not json", bytesSource("rates", `<html>`), bytesSource("c", testCountries)},
		{"countries not json", bytesSource("rates", `{"base":"USD","rates":{}}`), bytesSource("c", `nope`)},
		{"countries missing rates", bytesSource("rates", `{"base":"USD","rates":{}}`), bytesSource("c", `{}`)},
		{"rates fetch fails", failingSource{errors.New("boom")}, bytesSource("c", testCountries)},
		{"countries fetch fails", bytesSource("rates", `{"base":"USD","rates":{}}`), failingSource{errors.New("boom")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildCatalog(context.Background(), tt.rates, tt.countries)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrSourceUnavailable)
		})
	}
}

func TestBuildCatalog_BundledCountries(t *testing.T) {
	c, err := BuildCatalog(context.Background(),
		bytesSource("rates", `{"base":"EUR","rates":{"USD":1.1,"UAH":45.2,"JPY":160.4}}`),
		source.Countries(),
	)
	require.NoError(t, err)

	for _, code := range c.Codes() {
		info, _ := c.Get(code)
		assert.NotEqual(t, NoCountry, info.Country, code)
	}
}
