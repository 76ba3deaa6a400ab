package service

type CurrencyInfo struct {
	Country string
	Rate    float64
}

// TrackedEntry holds the displayed amount of a tracked currency, i.e. its
// catalog rate scaled by the ratio of the last conversion.
type TrackedEntry struct {
	Code         CurrencyCode
	DisplayValue float64
}

type SelectionToggleEntry struct {
	Country string
	Code    CurrencyCode
	On      bool
}

// Row is what a table cell shows for a tracked currency.
type Row struct {
	Country string
	Code    CurrencyCode
	Value   string
}
