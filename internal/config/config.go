package config

import (
	"fmt"
	"time"

	"github.com/muurk/scheduledevents/internal/dhcp"
	"github.com/muurk/scheduledevents/internal/discovery"
	"github.com/muurk/scheduledevents/internal/events"
)

// CurrentVersion is the config file format version
const CurrentVersion = 1

// Config is the on-disk configuration. Zero values in the file fall back to
// Default().
type Config struct {
	// Version is the config format version (currently 1)
	Version int `yaml:"version"`

	// LogLevel is debug, info, warn or error; empty leaves logging off
	LogLevel string `yaml:"log_level,omitempty"`

	Discovery DiscoveryConfig `yaml:"discovery"`
	Client    ClientConfig    `yaml:"client"`
}

// DiscoveryConfig tunes the DHCP option query and the discovery run
type DiscoveryConfig struct {
	OptionID          uint32   `yaml:"option_id"`
	ApplicationID     string   `yaml:"application_id"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
	TimeoutPolicy     string   `yaml:"timeout_policy"` // abort or skip
	InitialBufferSize uint32   `yaml:"initial_buffer_size"`
	MaxBufferAttempts int      `yaml:"max_buffer_attempts"`
	Persistent        bool     `yaml:"persistent"`           // ask the DHCP client to keep the option across renewals
	Interfaces        []string `yaml:"interfaces,omitempty"` // restrict discovery to these interface IDs or names
}

// ClientConfig configures the scheduled events HTTP client
type ClientConfig struct {
	// Endpoint skips discovery when set
	Endpoint       string `yaml:"endpoint,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Discovery: DiscoveryConfig{
			OptionID:          dhcp.ControlEndpointOption,
			ApplicationID:     discovery.DefaultApplicationID,
			TimeoutSeconds:    int(discovery.DefaultTimeout / time.Second),
			TimeoutPolicy:     discovery.TimeoutAbort.String(),
			InitialBufferSize: dhcp.DefaultInitialBufferSize,
			MaxBufferAttempts: dhcp.DefaultMaxAttempts,
		},
		Client: ClientConfig{
			TimeoutSeconds: int(events.DefaultTimeout / time.Second),
		},
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}

	d := c.Discovery
	if d.OptionID == 0 || d.OptionID > 254 {
		return fmt.Errorf("invalid discovery.option_id %d (want 1-254)", d.OptionID)
	}
	if d.TimeoutSeconds <= 0 {
		return fmt.Errorf("discovery.timeout_seconds must be positive, got %d", d.TimeoutSeconds)
	}
	if _, err := discovery.ParseTimeoutPolicy(d.TimeoutPolicy); err != nil {
		return fmt.Errorf("invalid discovery.timeout_policy: %w", err)
	}
	if d.InitialBufferSize == 0 {
		return fmt.Errorf("discovery.initial_buffer_size must be positive")
	}
	if d.MaxBufferAttempts < 1 {
		return fmt.Errorf("discovery.max_buffer_attempts must be at least 1, got %d", d.MaxBufferAttempts)
	}

	if c.Client.TimeoutSeconds <= 0 {
		return fmt.Errorf("client.timeout_seconds must be positive, got %d", c.Client.TimeoutSeconds)
	}
	return nil
}

// DiscoveryTimeout returns the per-interface query deadline
func (c *Config) DiscoveryTimeout() time.Duration {
	return time.Duration(c.Discovery.TimeoutSeconds) * time.Second
}

// ClientTimeout returns the HTTP request timeout
func (c *Config) ClientTimeout() time.Duration {
	return time.Duration(c.Client.TimeoutSeconds) * time.Second
}

// RequestFlags returns the DHCP request flags for the query
func (c *Config) RequestFlags() dhcp.RequestFlags {
	flags := dhcp.DefaultFlags
	if c.Discovery.Persistent {
		flags |= dhcp.RequestPersistent
	}
	return flags
}
