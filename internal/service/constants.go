package service

import "time"

// NoCountry is the country of a catalog entry missing from the country file.
const NoCountry = "No Country!"

const (
	defaultInitialLoadTimeout = 30 * time.Second
	defaultWriteTimeout       = 5 * time.Second
)

// unsupportedCodes are served by the rates feed but have no country or UI data:
// precious metals, offshore yuan and micro-territory pounds.
var unsupportedCodes = []CurrencyCode{
	"CNH", "GGP", "IMP", "JEP", "XAG", "XAU", "XPD", "XPF", "XPT", "ZMK", "SHP",
}

// defaultPack seeds the tracked set on first run.
var defaultPack = []CurrencyCode{"USD", "EUR", "RUB", "UAH", "GBP", "AUD"}
