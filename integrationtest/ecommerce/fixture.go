// Package ecommerce wires a small order pipeline through the dispatcher:
// inventory and payment subscribers loaded from configuration, plus a
// deferred mailer listener resolved at dispatch time.
package ecommerce

import (
	"fmt"
	"io"

	ed "github.com/rickchristie/eventdispatcher"
	"github.com/rickchristie/eventdispatcher/config"
	"github.com/rickchristie/eventdispatcher/dispatcher"
	"github.com/rickchristie/eventdispatcher/hooks"
	"github.com/rickchristie/eventdispatcher/loggers"
	"go.uber.org/zap"
)

// Event names used by the shop.
const (
	EventOrderPlaced = "ecommerce.OrderPlaced"
	EventRefund      = "order.refund"
)

// Store is the state shared by every subscriber.
type Store struct {
	Stock   map[string]int
	Charges map[string]int
	Emails  []string
}

// OrderPlaced is dispatched as an object, so it is routed by its type name.
type OrderPlaced struct {
	ed.Event

	OrderID  string
	SKU      string
	Quantity int
	Amount   int
}

// -----------------------------------------------------------------------------
// Subscribers
// -----------------------------------------------------------------------------

// InventorySubscriber reserves stock before anything else runs and rejects
// orders that cannot be fulfilled.
type InventorySubscriber struct {
	store *Store
}

func (s *InventorySubscriber) SubscribedEvents() ed.Subscriptions {
	return ed.Subscriptions{
		EventOrderPlaced: ed.MethodSpec{Method: "Reserve", Priority: 10},
	}
}

func (s *InventorySubscriber) Reserve(o *OrderPlaced) {
	if s.store.Stock[o.SKU] < o.Quantity {
		o.Set("rejected", "out of stock").StopPropagation()
		return
	}
	s.store.Stock[o.SKU] -= o.Quantity
}

// PaymentSubscriber charges accepted orders and answers refund requests.
type PaymentSubscriber struct {
	store *Store
}

func (s *PaymentSubscriber) SubscribedEvents() ed.Subscriptions {
	return ed.Subscriptions{
		EventOrderPlaced: ed.Method("Charge"),
		EventRefund:      ed.Method("Refund"),
	}
}

func (s *PaymentSubscriber) Charge(o *OrderPlaced) {
	s.store.Charges[o.OrderID] += o.Amount
}

// Refund replaces the order id payload with the refunded amount.
func (s *PaymentSubscriber) Refund(orderID string) (int, error) {
	amount, ok := s.store.Charges[orderID]
	if !ok {
		return 0, fmt.Errorf("no charge for order %q", orderID)
	}
	delete(s.store.Charges, orderID)
	return amount, nil
}

// -----------------------------------------------------------------------------
// Shop
// -----------------------------------------------------------------------------

// Shop is a configured dispatcher together with its store.
type Shop struct {
	Store      *Store
	Dispatcher *dispatcher.Dispatcher
}

// NewContainer registers the shop's subscribers and the mailer listener.
func NewContainer(store *Store) *ed.Container {
	return ed.NewContainer().
		Register("inventory", func() any { return &InventorySubscriber{store: store} }).
		Register("payment", func() any { return &PaymentSubscriber{store: store} }).
		Register("mailer", func() any {
			return func(o *OrderPlaced) {
				store.Emails = append(store.Emails, "confirmation:"+o.OrderID)
			}
		})
}

// NewShop builds a shop whose dispatch trace is written to w as YAML.
func NewShop(w io.Writer, stock map[string]int) (*Shop, error) {
	store := &Store{
		Stock:   stock,
		Charges: make(map[string]int),
	}

	cfg := config.Default()
	cfg.Subscribers = []string{"inventory", "payment"}
	cfg.MaxRecursion = 5

	registry := hooks.NewRegistry().Register(loggers.NewYAMLHookWithWriter(w))
	d, err := config.NewDispatcher(&cfg, NewContainer(store), registry, zap.NewNop())
	if err != nil {
		return nil, err
	}
	d.Listen(EventOrderPlaced, "mailer", -10)

	return &Shop{Store: store, Dispatcher: d}, nil
}

// PlaceOrder dispatches an OrderPlaced event and returns it.
func (s *Shop) PlaceOrder(id, sku string, quantity, amount int) (*OrderPlaced, error) {
	order := &OrderPlaced{OrderID: id, SKU: sku, Quantity: quantity, Amount: amount}
	if _, err := s.Dispatcher.Dispatch(order, nil); err != nil {
		return nil, err
	}
	return order, nil
}

// Refund dispatches a refund request and returns the refunded amount.
func (s *Shop) Refund(orderID string) (int, error) {
	result, err := s.Dispatcher.Dispatch(EventRefund, orderID)
	if err != nil {
		return 0, err
	}
	amount, ok := result.(int)
	if !ok {
		return 0, fmt.Errorf("unexpected refund result %T", result)
	}
	return amount, nil
}
