package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusPaid      OrderStatus = "paid"
	StatusCancelled OrderStatus = "cancelled"
)

// CheckoutFlow selects the initial order status. A cart checkout runs after
// payment capture, so its orders start paid; a buy-now order starts pending
// and matures through the kitchen chain.
type CheckoutFlow string

const (
	FlowCart   CheckoutFlow = "cart"
	FlowBuyNow CheckoutFlow = "buy_now"
)

func InitialStatus(flow CheckoutFlow) OrderStatus {
	if flow == FlowCart {
		return StatusPaid
	}
	return StatusPending
}

// transitions is the kitchen progression plus cancellation. paid and
// cancelled are terminal.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusServed, StatusCancelled},
	StatusServed:    {StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
