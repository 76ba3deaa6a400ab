package converter_test

import (
	"context"
	"testing"

	converter "github.com/omerorhan/currency-converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, store converter.Store) *converter.Client {
	t.Helper()
	client, err := converter.NewClient(
		converter.WithRatesSource(converter.BytesSource{Name: "rates", Data: []byte(`{"base":"USD","rates":{"EUR":0.9,"XAU":0.0004}}`)}),
		converter.WithStore(store),
		converter.WithLogging(false),
	)
	require.NoError(t, err)
	require.NoError(t, client.Initialize(context.Background()))
	t.Cleanup(func() { client.Stop() })
	return client
}

func TestClient_ConvertScenario(t *testing.T) {
	store := converter.NewMemoryStore("USD", "EUR")
	client := newClient(t, store)

	require.NoError(t, client.Convert("USD", 10))
	rows, err := client.Rows()
	require.NoError(t, err)
	assert.Equal(t, []converter.Row{
		{Country: "European Union", Code: "EUR", Value: "9"},
		{Country: "United States", Code: "USD", Value: "10"},
	}, rows)

	assert.ErrorIs(t, client.Delete("XYZ"), converter.ErrNotTracked)
	assert.ErrorIs(t, client.Add("XAU"), converter.ErrUnknownCurrency)
	_, err = client.Row(2)
	assert.ErrorIs(t, err, converter.ErrIndexOutOfRange)
}

func TestClient_SelectionRoundTrip(t *testing.T) {
	store := converter.NewMemoryStore("USD")
	client := newClient(t, store)

	all, err := client.AvailableCurrencies()
	require.NoError(t, err)
	assert.Equal(t, []converter.SelectionToggleEntry{
		{Country: "European Union", Code: "EUR"},
		{Country: "United States", Code: "USD", On: true},
	}, all)

	sel, err := client.NewSelection()
	require.NoError(t, err)
	require.NoError(t, sel.SetOn("EUR"))
	assert.ErrorIs(t, sel.SetOn("XAU"), converter.ErrNotFound)

	added, removed, err := client.ApplySelection(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR"}, added)
	assert.Empty(t, removed)

	require.NoError(t, client.Filter("euro"))
	assert.Equal(t, 1, client.Len())
	v, err := client.GetRate("EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.9", v)

	client.Flush()
	codes, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR"}, codes)
}
