// Package exchange holds the per-query state object handed through the
// handler chain.
package exchange

import (
	"net"

	"github.com/jroosing/shieldproxy/internal/config"
)

// State is the terminal-status field a handler sets to tell the chain
// runner what to do next.
type State int

const (
	// Initial is the zero value: no handler has made a terminal decision
	// yet, or the last handler was observational.
	Initial State = iota
	// OK means a handler did useful work but later handlers may still run.
	OK
	// Complete means a reply has already been sent; the chain should stop.
	Complete
	// Failed means an unrecoverable I/O failure occurred on the client
	// socket; the chain should stop.
	Failed
	// Invalid means an upstream or protocol failure occurred and no reply
	// was sent; the chain should stop.
	Invalid
)

func (s State) String() string {
	switch s {
	case Initial:
		return "INITIAL"
	case OK:
		return "OK"
	case Complete:
		return "COMPLETE"
	case Failed:
		return "FAILED"
	case Invalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Exchange is one in-flight query's state, exclusively owned by the
// goroutine that received its datagram. It never crosses goroutine
// boundaries.
type Exchange struct {
	// Inbound is the raw datagram bytes as received, length Length.
	Inbound []byte
	// Length is the number of meaningful bytes in Inbound.
	Length int
	// Source is the client address the reply must be sent back to.
	Source *net.UDPAddr
	// Socket is the shared listening socket, used to send the reply.
	Socket *net.UDPConn
	// Config is the shared, immutable startup configuration.
	Config *config.Config

	state State
}

// New constructs an Exchange for one received datagram.
func New(inbound []byte, length int, source *net.UDPAddr, socket *net.UDPConn, cfg *config.Config) *Exchange {
	return &Exchange{Inbound: inbound, Length: length, Source: source, Socket: socket, Config: cfg, state: Initial}
}

// State returns the current terminal-status field.
func (e *Exchange) State() State {
	return e.state
}

// SetState updates the terminal-status field. Handlers call this to
// signal the chain runner whether to continue or stop.
func (e *Exchange) SetState(s State) {
	e.state = s
}

// Done reports whether the chain should stop after this handler, per the
// Complete/Failed/Invalid states.
func (e *Exchange) Done() bool {
	return e.state == Complete || e.state == Failed || e.state == Invalid
}
