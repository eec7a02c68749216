// Package pipeline implements the ordered handler chain that turns a
// received datagram into a reply: consult the denylist, and otherwise
// forward to an upstream resolver.
package pipeline

import (
	"log/slog"

	"github.com/jroosing/shieldproxy/internal/exchange"
)

// Handler is a single pipeline stage acting on an Exchange. It sets the
// Exchange's state to tell the Chain runner whether to continue.
type Handler interface {
	Exec(ex *exchange.Exchange)
}

// Chain is an ordered list of handlers run serially over one Exchange.
type Chain struct {
	handlers []Handler
}

// New builds a Chain from handlers, run in the given order.
func New(handlers ...Handler) *Chain {
	return &Chain{handlers: handlers}
}

// Run invokes each handler in order, stopping as soon as the Exchange's
// state reaches a terminal value (Complete, Failed, or Invalid).
func (c *Chain) Run(logger *slog.Logger, ex *exchange.Exchange) {
	for _, h := range c.handlers {
		h.Exec(ex)
		if ex.Done() {
			return
		}
	}
}
