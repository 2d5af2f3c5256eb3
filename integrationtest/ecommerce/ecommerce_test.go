package ecommerce

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShop(t *testing.T, stock map[string]int) (*Shop, *bytes.Buffer) {
	t.Helper()
	var trace bytes.Buffer
	shop, err := NewShop(&trace, stock)
	require.NoError(t, err)
	return shop, &trace
}

func TestShop_ListenerOrder(t *testing.T) {
	shop, _ := newShop(t, nil)

	listeners := shop.Dispatcher.Listeners(EventOrderPlaced)

	require.Len(t, listeners, 3)
	assert.Equal(t, "mailer", listeners[2])
	assert.Equal(t, []string{EventOrderPlaced, EventRefund}, shop.Dispatcher.Events())
}

func TestShop_CheckoutAndRefund(t *testing.T) {
	shop, trace := newShop(t, map[string]int{"book": 3})

	order, err := shop.PlaceOrder("A-1", "book", 2, 40)
	require.NoError(t, err)

	assert.False(t, order.IsPropagationStopped())
	assert.Equal(t, 1, shop.Store.Stock["book"])
	assert.Equal(t, map[string]int{"A-1": 40}, shop.Store.Charges)
	assert.Equal(t, []string{"confirmation:A-1"}, shop.Store.Emails)

	amount, err := shop.Refund("A-1")
	require.NoError(t, err)
	assert.Equal(t, 40, amount)
	assert.Empty(t, shop.Store.Charges)

	assert.Equal(t, 8, strings.Count(trace.String(), "---\n"), "4 listener docs plus 2 before/after pairs")
	assert.Contains(t, trace.String(), "event: "+EventRefund)
}

func TestShop_OutOfStockStopsPropagation(t *testing.T) {
	shop, trace := newShop(t, map[string]int{"book": 1})

	order, err := shop.PlaceOrder("A-2", "book", 5, 100)
	require.NoError(t, err)

	assert.True(t, order.IsPropagationStopped())
	assert.Equal(t, "out of stock", order.Get("rejected"))
	assert.Equal(t, 1, shop.Store.Stock["book"])
	assert.Empty(t, shop.Store.Charges)
	assert.Empty(t, shop.Store.Emails)
	assert.Contains(t, trace.String(), "stopped: flag")
}

func TestShop_RefundUnknownOrder(t *testing.T) {
	shop, trace := newShop(t, nil)

	_, err := shop.Refund("missing")

	assert.ErrorContains(t, err, `no charge for order "missing"`)
	assert.Contains(t, trace.String(), "no charge for order")
}
