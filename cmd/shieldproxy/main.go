// Command shieldproxy runs the UDP DNS forwarder: it loads configuration
// and a denylist, binds the listening socket, and serves until
// interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jroosing/shieldproxy/internal/config"
	"github.com/jroosing/shieldproxy/internal/denylist"
	"github.com/jroosing/shieldproxy/internal/logging"
	"github.com/jroosing/shieldproxy/internal/server"
)

// defaultConfigPath is used when neither --config nor -c is given.
const defaultConfigPath = "config/server.yaml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.Configure(logging.Config{
		Enabled: cfg.Logging.Enabled,
		Level:   cfg.Logging.Level,
	})

	if cfg.Server.WorkerThreadCount > 0 {
		runtime.GOMAXPROCS(cfg.Server.WorkerThreadCount)
	}

	store := denylist.Load(logger, cfg.UDPProxy.DomainBlockLists)
	logger.Info("denylist loaded", "entries", store.Len())

	listener, err := server.New(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("binding listener: %w", err)
	}

	logger.Info("shieldproxy starting",
		"bind", cfg.UDPProxy.Bind,
		"upstreams", cfg.UDPProxy.DNSHosts,
		"packet_size", cfg.UDPProxy.PacketSize,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := listener.Serve(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("listener exited: %w", err)
	}
	return nil
}

// parseFlags reads --config/-c, defaulting to defaultConfigPath when
// neither is given.
func parseFlags() string {
	var long, short string
	flag.StringVar(&long, "config", "", "path to configuration file")
	flag.StringVar(&short, "c", "", "path to configuration file (shorthand)")
	flag.Parse()

	switch {
	case long != "":
		return long
	case short != "":
		return short
	default:
		return defaultConfigPath
	}
}
