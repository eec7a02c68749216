// Package forwarder relays a raw DNS query to upstream resolvers and
// returns the first upstream reply.
package forwarder

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// ErrAllUpstreamsFailed is returned when every configured upstream timed
// out or errored.
var ErrAllUpstreamsFailed = errors.New("forwarder: all upstreams failed")

// Forward attempts each upstream in order, each on a fresh ephemeral UDP
// socket with an independent timeout. It returns the bytes received from
// the first upstream to answer and stops; it never inspects the DNS
// payload, relaying it verbatim. If every upstream fails, it returns
// ErrAllUpstreamsFailed.
func Forward(logger *slog.Logger, request []byte, upstreams []string, timeout time.Duration) ([]byte, error) {
	for _, upstream := range upstreams {
		reply, err := attempt(request, upstream, timeout)
		if err != nil {
			logger.Debug("upstream attempt failed", "upstream", upstream, "error", err)
			continue
		}
		return reply, nil
	}
	return nil, ErrAllUpstreamsFailed
}

func attempt(request []byte, upstream string, timeout time.Duration) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", upstream)
	if err != nil {
		return nil, fmt.Errorf("resolving upstream %s: %w", upstream, err)
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("binding ephemeral socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("setting deadline: %w", err)
	}

	if _, err := conn.WriteToUDP(request, addr); err != nil {
		return nil, fmt.Errorf("sending to upstream %s: %w", upstream, err)
	}

	buf := make([]byte, 4096)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		return nil, fmt.Errorf("reading from upstream %s: %w", upstream, err)
	}

	return buf[:n], nil
}
