package service

import (
	"errors"

	"github.com/omerorhan/currency-converter/internal/source"
)

// ErrSourceUnavailable indicates the rates feed or the country file could not be fetched or parsed.
var ErrSourceUnavailable = source.ErrSourceUnavailable

// ErrDivisionByZero indicates a conversion anchored on a zero rate.
var ErrDivisionByZero = errors.New("division by zero")

// ErrInvalidValue indicates a NaN or infinite conversion value.
var ErrInvalidValue = errors.New("invalid value")

// ErrNotTracked indicates the currency is not in the tracked set (or not in its current filtered view).
var ErrNotTracked = errors.New("currency not tracked")

// ErrNotFound indicates the currency is not in the selection list.
var ErrNotFound = errors.New("currency not found")

// ErrIndexOutOfRange indicates a row beyond the current filtered view.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrUnknownCurrency indicates the currency is not in the catalog.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrAlreadyTracked indicates an attempt to add a currency twice.
var ErrAlreadyTracked = errors.New("currency already tracked")

var ErrNotInitialized = errors.New("service not initialized - call Initialize() first")
