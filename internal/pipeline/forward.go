package pipeline

import (
	"log/slog"
	"time"

	"github.com/jroosing/shieldproxy/internal/exchange"
	"github.com/jroosing/shieldproxy/internal/forwarder"
)

// Forward is the pipeline's second handler: it relays the raw request
// bytes to the configured upstream resolvers and writes the first
// upstream reply back to the client.
type Forward struct {
	Logger *slog.Logger
}

// Exec implements Handler.
func (fw *Forward) Exec(ex *exchange.Exchange) {
	cfg := ex.Config.UDPProxy
	timeout := time.Duration(cfg.TimeoutMillis) * time.Millisecond

	reply, err := forwarder.Forward(fw.Logger, ex.Inbound[:ex.Length], cfg.DNSHosts, timeout)
	if err != nil {
		fw.Logger.Debug("all upstreams failed", "error", err)
		ex.SetState(exchange.Invalid)
		return
	}

	if _, err := ex.Socket.WriteToUDP(reply, ex.Source); err != nil {
		fw.Logger.Warn("failed to relay upstream reply", "error", err)
		ex.SetState(exchange.Failed)
		return
	}
	ex.SetState(exchange.OK)
}
