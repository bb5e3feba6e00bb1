package payment

import "sync"

// inflightGuard blocks duplicate approval submissions for the same order.
// The flag flips atomically under LoadOrStore, so two concurrent submits for
// one order resolve to exactly one winner.
type inflightGuard struct {
	orders sync.Map
}

// begin marks the order in flight. It reports false when the order already
// is.
func (g *inflightGuard) begin(orderID string) bool {
	_, loaded := g.orders.LoadOrStore(orderID, struct{}{})
	return !loaded
}

// end releases the order. Always released, success or failure: a failed
// attempt may be retried with fresh input.
func (g *inflightGuard) end(orderID string) {
	g.orders.Delete(orderID)
}
