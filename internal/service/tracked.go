package service

import (
	"fmt"
	"maps"
	"slices"
)

// TrackedSet is the user's chosen subset of the catalog with live displayed
// amounts. It is not safe for concurrent use.
type TrackedSet struct {
	catalog *Catalog
	journal Journal

	tracked map[CurrencyCode]*TrackedEntry
	// ordered is the sorted projection of tracked keys through filter.
	ordered []CurrencyCode
	filter  string
	ratio   float64
}

func NewTrackedSet(catalog *Catalog, journal Journal) *TrackedSet {
	return &TrackedSet{
		catalog: catalog,
		journal: journal,
		tracked: make(map[CurrencyCode]*TrackedEntry),
		ratio:   1,
	}
}

// Load fills the set from the persisted codes. Codes missing from the
// catalog are skipped. When nothing was persisted the default pack is
// tracked and journaled.
func (ts *TrackedSet) Load(persisted []CurrencyCode) {
	for _, code := range persisted {
		ts.insert(code)
	}
	if len(persisted) == 0 {
		for _, code := range defaultPack {
			if ts.insert(code) {
				ts.journal.Insert(code)
			}
		}
	}
	ts.rebuild()
}

func (ts *TrackedSet) insert(code CurrencyCode) bool {
	code = normalizeCode(code)
	info, ok := ts.catalog.Get(code)
	if !ok {
		return false
	}
	ts.tracked[code] = &TrackedEntry{Code: code, DisplayValue: info.Rate}
	return true
}

// Convert sets code to value and rescales every tracked currency by the same
// ratio. The ratio is anchored on the catalog rate of code.
func (ts *TrackedSet) Convert(code CurrencyCode, value float64) error {
	code = normalizeCode(code)
	entry, ok := ts.tracked[code]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotTracked, code)
	}
	if !isFinite(value) {
		return fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}
	info, _ := ts.catalog.Get(code)
	if info.Rate == 0 {
		return fmt.Errorf("%w: %s has a zero rate", ErrDivisionByZero, code)
	}

	ratio := value / info.Rate
	if !isFinite(ratio) {
		return fmt.Errorf("%w: %v %s overflows the ratio", ErrInvalidValue, value, code)
	}
	scaled := make(map[CurrencyCode]float64, len(ts.tracked))
	for c := range ts.tracked {
		rate, _ := ts.catalog.Get(c)
		v := rate.Rate * ratio
		if !isFinite(v) {
			return fmt.Errorf("%w: %v %s overflows %s", ErrInvalidValue, value, code, c)
		}
		scaled[c] = v
	}

	for c, v := range scaled {
		ts.tracked[c].DisplayValue = v
	}
	entry.DisplayValue = value
	ts.ratio = ratio
	return nil
}

// Add tracks code and scales it into the current ratio.
func (ts *TrackedSet) Add(code CurrencyCode) error {
	code = normalizeCode(code)
	if !ts.catalog.Has(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	if _, ok := ts.tracked[code]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyTracked, code)
	}

	anchor, hasAnchor := ts.anchor()
	ts.insert(code)
	if hasAnchor {
		if err := ts.Convert(anchor.Code, anchor.DisplayValue); err != nil {
			delete(ts.tracked, code)
			return err
		}
	} else {
		ts.ratio = 1
	}
	ts.rebuild()
	ts.journal.Insert(code)
	return nil
}

// anchor picks the lowest-coded tracked entry whose rate can anchor a conversion.
func (ts *TrackedSet) anchor() (TrackedEntry, bool) {
	for _, c := range slices.Sorted(maps.Keys(ts.tracked)) {
		if info, _ := ts.catalog.Get(c); info.Rate != 0 {
			return *ts.tracked[c], true
		}
	}
	return TrackedEntry{}, false
}

// Delete stops tracking code.
func (ts *TrackedSet) Delete(code CurrencyCode) error {
	code = normalizeCode(code)
	if _, ok := ts.tracked[code]; !ok {
		return fmt.Errorf("%w: %s", ErrNotTracked, code)
	}
	delete(ts.tracked, code)
	ts.rebuild()
	ts.journal.Delete(code)
	return nil
}

// Filter restricts the ordered view to entries matching text. The filter
// sticks until replaced, an empty text shows everything.
func (ts *TrackedSet) Filter(text string) {
	ts.filter = text
	ts.rebuild()
}

func (ts *TrackedSet) rebuild() {
	ts.ordered = ts.ordered[:0]
	for code := range ts.tracked {
		info, _ := ts.catalog.Get(code)
		if matchesSearch(code, info.Country, ts.filter) {
			ts.ordered = append(ts.ordered, code)
		}
	}
	slices.Sort(ts.ordered)
}

// Len is the number of rows in the current view.
func (ts *TrackedSet) Len() int { return len(ts.ordered) }

// Present returns the row at index of the current view.
func (ts *TrackedSet) Present(index int) (Row, error) {
	if index < 0 || index >= len(ts.ordered) {
		return Row{}, fmt.Errorf("%w: %d (rows: %d)", ErrIndexOutOfRange, index, len(ts.ordered))
	}
	code := ts.ordered[index]
	info, _ := ts.catalog.Get(code)
	return Row{
		Country: info.Country,
		Code:    code,
		Value:   formatValue(ts.tracked[code].DisplayValue),
	}, nil
}

// GetRate returns the formatted value of code. Codes hidden by the current
// filter are reported as not tracked.
func (ts *TrackedSet) GetRate(code CurrencyCode) (string, error) {
	i := slices.Index(ts.ordered, normalizeCode(code))
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrNotTracked, code)
	}
	row, err := ts.Present(i)
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// AvailableCurrencies lists the whole catalog, flagging the tracked codes.
func (ts *TrackedSet) AvailableCurrencies() []SelectionToggleEntry {
	codes := ts.catalog.Codes()
	out := make([]SelectionToggleEntry, 0, len(codes))
	for _, code := range codes {
		info, _ := ts.catalog.Get(code)
		_, on := ts.tracked[code]
		out = append(out, SelectionToggleEntry{Country: info.Country, Code: code, On: on})
	}
	return out
}

// IsTracked reports whether code is tracked, regardless of the filter.
func (ts *TrackedSet) IsTracked(code CurrencyCode) bool {
	_, ok := ts.tracked[normalizeCode(code)]
	return ok
}

// Codes returns every tracked code in ascending order, regardless of the filter.
func (ts *TrackedSet) Codes() []CurrencyCode {
	return slices.Sorted(maps.Keys(ts.tracked))
}

// Entries returns a snapshot of the tracked entries sorted by code.
func (ts *TrackedSet) Entries() []TrackedEntry {
	out := make([]TrackedEntry, 0, len(ts.tracked))
	for _, code := range ts.Codes() {
		out = append(out, *ts.tracked[code])
	}
	return out
}

// Ratio is the scale applied by the last conversion, 1 before any.
func (ts *TrackedSet) Ratio() float64 { return ts.ratio }
