package service

import (
	"fmt"
	"slices"
)

// SelectionModel is an on/off toggle list over a snapshot of the catalog,
// used while the user picks currencies to track. Toggling does not refresh
// the filtered view, call Filter again to see the new flags.
type SelectionModel struct {
	currencies []SelectionToggleEntry
	filtered   []SelectionToggleEntry
}

func NewSelectionModel(entries []SelectionToggleEntry) *SelectionModel {
	currencies := slices.Clone(entries)
	return &SelectionModel{
		currencies: currencies,
		filtered:   slices.Clone(currencies),
	}
}

// Filter rebuilds the filtered view from the backing list.
func (sm *SelectionModel) Filter(text string) {
	if text == "" {
		sm.filtered = slices.Clone(sm.currencies)
		return
	}
	sm.filtered = sm.filtered[:0]
	for _, e := range sm.currencies {
		if matchesSearch(e.Code, e.Country, text) {
			sm.filtered = append(sm.filtered, e)
		}
	}
}

func (sm *SelectionModel) SetOn(code CurrencyCode) error  { return sm.set(code, true) }
func (sm *SelectionModel) SetOff(code CurrencyCode) error { return sm.set(code, false) }

func (sm *SelectionModel) set(code CurrencyCode, on bool) error {
	code = normalizeCode(code)
	i := slices.IndexFunc(sm.currencies, func(e SelectionToggleEntry) bool { return e.Code == code })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	sm.currencies[i].On = on
	return nil
}

// Filtered returns a copy of the filtered view.
func (sm *SelectionModel) Filtered() []SelectionToggleEntry {
	return slices.Clone(sm.filtered)
}

func (sm *SelectionModel) Len() int { return len(sm.filtered) }

func (sm *SelectionModel) At(index int) (SelectionToggleEntry, error) {
	if index < 0 || index >= len(sm.filtered) {
		return SelectionToggleEntry{}, fmt.Errorf("%w: %d (rows: %d)", ErrIndexOutOfRange, index, len(sm.filtered))
	}
	return sm.filtered[index], nil
}

// Selected returns the codes switched on in the backing list.
func (sm *SelectionModel) Selected() []CurrencyCode {
	var out []CurrencyCode
	for _, e := range sm.currencies {
		if e.On {
			out = append(out, e.Code)
		}
	}
	return out
}

// Entries returns a copy of the backing list.
func (sm *SelectionModel) Entries() []SelectionToggleEntry {
	return slices.Clone(sm.currencies)
}
