// Package server owns the listening UDP socket and dispatches one
// goroutine per received datagram.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"syscall"

	"github.com/jroosing/shieldproxy/internal/config"
	"github.com/jroosing/shieldproxy/internal/denylist"
	"github.com/jroosing/shieldproxy/internal/exchange"
	"github.com/jroosing/shieldproxy/internal/helpers"
	"github.com/jroosing/shieldproxy/internal/pipeline"
	"github.com/jroosing/shieldproxy/internal/pool"
	"golang.org/x/sys/unix"
)

// minPacketSize and maxPacketSize bound udp_proxy.packet_size before it
// sizes a receive buffer, guarding against a misconfigured value too
// small to hold a DNS header or larger than a UDP datagram can ever be.
const (
	minPacketSize = 512
	maxPacketSize = 65507
)

// Listener owns the single bound UDP socket and runs the handler chain
// for each datagram it receives.
type Listener struct {
	conn   *net.UDPConn
	cfg    *config.Config
	logger *slog.Logger
	chain  *pipeline.Chain
	bufs   *pool.Pool[[]byte]
}

// New binds the listening socket at cfg.UDPProxy.Bind (with SO_REUSEADDR
// set on the single socket) and builds the default [Filter, Forward]
// handler chain over store.
func New(cfg *config.Config, store *denylist.Store, logger *slog.Logger) (*Listener, error) {
	conn, err := listenReuseAddr(cfg.UDPProxy.Bind)
	if err != nil {
		return nil, err
	}

	packetSize := helpers.ClampInt(cfg.UDPProxy.PacketSize, minPacketSize, maxPacketSize)
	chain := pipeline.New(
		&pipeline.Filter{Store: store, Logger: logger},
		&pipeline.Forward{Logger: logger},
	)

	return &Listener{
		conn:   conn,
		cfg:    cfg,
		logger: logger,
		chain:  chain,
		bufs: pool.New(func() []byte {
			return make([]byte, packetSize)
		}),
	}, nil
}

// listenReuseAddr binds a UDP socket with SO_REUSEADDR set, so a
// restarted process can rebind immediately after the prior socket closes.
func listenReuseAddr(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}

	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), "udp", udpAddr.String())
	if err != nil {
		return nil, err
	}
	return pc.(*net.UDPConn), nil
}

// Serve runs the non-blocking receive loop until ctx is cancelled. Each
// received datagram is handed to its own goroutine, which owns the
// Exchange and runs the handler chain to completion; the receive loop
// itself never blocks on a handler. Would-block and connection-reset
// conditions are ignored and the loop continues; any other recv error is
// logged and the loop continues.
func (l *Listener) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.conn.Close()
	}()

	for {
		buf := l.bufs.Get()
		n, src, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isWouldBlock(err) || isConnReset(err) {
				l.logger.Debug("ignoring transient listener recv error", "error", err)
				l.bufs.Put(buf)
				continue
			}
			l.logger.Warn("listener recv error", "error", err)
			l.bufs.Put(buf)
			continue
		}

		go l.dispatch(buf, n, src)
	}
}

func (l *Listener) dispatch(buf []byte, n int, src *net.UDPAddr) {
	defer l.bufs.Put(buf)

	ex := exchange.New(buf, n, src, l.conn, l.cfg)
	l.chain.Run(l.logger, ex)
}

func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN)
}

func isConnReset(err error) bool {
	return errors.Is(err, syscall.ECONNRESET)
}
