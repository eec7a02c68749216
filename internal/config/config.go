// Package config loads and validates this system's configuration.
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (SHIELDPROXY_* prefix)
//  2. YAML config file (selected with --config/-c)
//  3. Hardcoded defaults
//
// Environment variables map from SHIELDPROXY_CATEGORY_SETTING, e.g.
// SHIELDPROXY_UDP_PROXY_BIND maps to udp_proxy.bind in YAML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Logging holds the fields consumed by the external logging collaborator.
type Logging struct {
	Enabled bool
	Level   string
}

// Server holds process-wide server settings.
type Server struct {
	WorkerThreadCount int
}

// UDPProxy holds the forwarder's external interface fields.
type UDPProxy struct {
	Bind                string
	DNSHosts            []string
	DomainBlockLists    []string
	PacketSize          int
	RecordTypeBlockList []int
	TimeoutMillis       int
}

// Config is the fully loaded and validated configuration.
type Config struct {
	Logging  Logging
	Server   Server
	UDPProxy UDPProxy
}

// Load reads configuration from the YAML file at path (if non-empty),
// overlays SHIELDPROXY_-prefixed environment variables, and fills in
// defaults for anything left unset. It validates the result and returns
// a ConfigError-equivalent on any problem.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SHIELDPROXY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Logging: Logging{
			Enabled: v.GetBool("logging.enabled"),
			Level:   v.GetString("logging.level"),
		},
		Server: Server{
			WorkerThreadCount: v.GetInt("server.worker_thread_count"),
		},
		UDPProxy: UDPProxy{
			Bind:                v.GetString("udp_proxy.bind"),
			DNSHosts:            v.GetStringSlice("udp_proxy.dns_hosts"),
			DomainBlockLists:    v.GetStringSlice("udp_proxy.domain_block_lists"),
			PacketSize:          v.GetInt("udp_proxy.packet_size"),
			RecordTypeBlockList: v.GetIntSlice("udp_proxy.record_type_block_list"),
			TimeoutMillis:       v.GetInt("udp_proxy.timeout"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.level", "INFO")

	v.SetDefault("server.worker_thread_count", 0)

	v.SetDefault("udp_proxy.bind", "0.0.0.0:1053")
	v.SetDefault("udp_proxy.dns_hosts", []string{"8.8.8.8:53"})
	v.SetDefault("udp_proxy.domain_block_lists", []string{})
	v.SetDefault("udp_proxy.packet_size", 4096)
	v.SetDefault("udp_proxy.record_type_block_list", []int{})
	v.SetDefault("udp_proxy.timeout", 3000)
}

func validate(cfg *Config) error {
	if cfg.UDPProxy.Bind == "" {
		return errors.New("config: udp_proxy.bind must not be empty")
	}
	if len(cfg.UDPProxy.DNSHosts) == 0 {
		return errors.New("config: udp_proxy.dns_hosts must not be empty")
	}
	if cfg.UDPProxy.PacketSize <= 0 {
		return errors.New("config: udp_proxy.packet_size must be positive")
	}
	if cfg.UDPProxy.TimeoutMillis <= 0 {
		return errors.New("config: udp_proxy.timeout must be positive")
	}
	return nil
}
