package pipeline

import (
	"log/slog"

	"github.com/jroosing/shieldproxy/internal/denylist"
	"github.com/jroosing/shieldproxy/internal/exchange"
	"github.com/jroosing/shieldproxy/internal/wire"
)

// Filter is the pipeline's first handler: it decodes the inbound
// datagram and, if its question names a denied domain, synthesises and
// sends an NXDOMAIN reply. A malformed datagram or one with no
// questions is dropped silently (state Invalid, no reply). A query that
// is not blocked is left in the Initial state so the chain continues to
// the next handler.
type Filter struct {
	Store  *denylist.Store
	Logger *slog.Logger
}

// Exec implements Handler.
func (f *Filter) Exec(ex *exchange.Exchange) {
	buf := wire.NewBufferFromBytes(ex.Inbound[:ex.Length])
	packet, err := wire.ReadPacket(buf)
	if err != nil {
		f.Logger.Debug("dropping malformed packet", "error", err)
		ex.SetState(exchange.Invalid)
		return
	}
	if len(packet.Questions) == 0 {
		f.Logger.Debug("dropping packet with no questions")
		ex.SetState(exchange.Invalid)
		return
	}

	question := packet.Questions[0]
	// Denylist entries are fully qualified ("ads.example."), while the
	// decoder joins labels without a trailing dot, so one is added here.
	if !f.Store.Blocks(question.Name + ".") {
		return
	}

	f.Logger.Debug("blocking query", "name", question.Name, "type", question.Type)

	reply := buildBlockReply(packet)
	out := wire.NewBuffer(wire.DefaultBufferSize)
	if err := reply.Write(out); err != nil {
		f.Logger.Warn("failed to encode block reply", "error", err)
		ex.SetState(exchange.Invalid)
		return
	}

	if _, err := ex.Socket.WriteToUDP(out.Bytes(), ex.Source); err != nil {
		f.Logger.Warn("failed to send block reply", "error", err)
		ex.SetState(exchange.Failed)
		return
	}
	ex.SetState(exchange.Complete)
}

// buildBlockReply echoes the request header with QR set and the result
// code forced to NXDOMAIN, preserving the original question section and
// emitting no answer/authority/additional records. RecursionAvailable
// mirrors RecursionDesired from the request, matching the concrete reply
// bytes this system's block responses must produce.
func buildBlockReply(req wire.Packet) wire.Packet {
	h := req.Header
	h.Response = true
	h.ResultCode = wire.NXDomain
	h.RecursionAvailable = h.RecursionDesired

	return wire.Packet{
		Header:    h,
		Questions: req.Questions,
	}
}
