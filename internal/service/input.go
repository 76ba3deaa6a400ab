package service

// CurrencyCode is a 3-letter ISO 4217 code.
type CurrencyCode = string

// RatesEnvelope is the payload of the rates feed.
type RatesEnvelope struct {
	Base  *string            `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// CountriesEnvelope is the payload of the country-name file. It reuses the
// "rates" field name, the values are country names.
type CountriesEnvelope struct {
	Rates map[string]string `json:"rates"`
}
