// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the YAML configuration of a storymint node.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/storymint/chain"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/pebble"
	"github.com/ava-labs/storymint/program"
	"github.com/ava-labs/storymint/trace"
)

var (
	ErrInvalidConfig        = errors.New("invalid config")
	ErrMissingListenAddress = errors.New("missing listen address")
	ErrInvalidShutdown      = errors.New("shutdown timeout must be positive")
)

type LogConfig struct {
	Level        string `yaml:"level"`
	DisplayLevel string `yaml:"displayLevel"`
	Directory    string `yaml:"directory"`
	MaxSize      int    `yaml:"maxSize"`
	MaxFiles     int    `yaml:"maxFiles"`
	MaxAge       int    `yaml:"maxAge"`
	Compress     bool   `yaml:"compress"`
}

type HTTPConfig struct {
	ListenAddress     string        `yaml:"listenAddress"`
	AllowedOrigins    []string      `yaml:"allowedOrigins"`
	AllowedHosts      []string      `yaml:"allowedHosts"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

// ProgramConfig is [program.Config] with addresses in base58.
type ProgramConfig struct {
	ProgramID        string `yaml:"programID"`
	CoreID           string `yaml:"coreID"`
	ServerAuthority  string `yaml:"serverAuthority"`
	UpdateAuthority  string `yaml:"updateAuthority"`
	LockAmount       uint64 `yaml:"lockAmount"`
	MaxSupply        uint64 `yaml:"maxSupply"`
	RecordDelegation bool   `yaml:"recordDelegation"`
}

type Config struct {
	Log   LogConfig    `yaml:"log"`
	HTTP  HTTPConfig   `yaml:"http"`
	Trace trace.Config `yaml:"trace"`

	// DataDir holds the account database. The node keeps state in memory
	// when it is empty.
	DataDir string        `yaml:"dataDir"`
	Pebble  pebble.Config `yaml:"pebble"`

	Chain   chain.Config       `yaml:"chain"`
	Rules   chain.DefaultRules `yaml:"rules"`
	Program ProgramConfig      `yaml:"program"`
	Genesis chain.Genesis      `yaml:"genesis"`

	// Airdrop enables the requestAirdrop faucet.
	Airdrop bool `yaml:"airdrop"`
}

func NewDefaultConfig() *Config {
	p := program.NewDefaultConfig()
	return &Config{
		Log: LogConfig{
			Level:        logging.Info.String(),
			DisplayLevel: logging.Info.String(),
			MaxSize:      8,
			MaxFiles:     5,
			MaxAge:       7,
		},
		HTTP: HTTPConfig{
			ListenAddress:     "127.0.0.1:8899",
			AllowedOrigins:    []string{"*"},
			AllowedHosts:      []string{"localhost"},
			ReadHeaderTimeout: 30 * time.Second,
			IdleTimeout:       2 * time.Minute,
			ShutdownTimeout:   10 * time.Second,
		},
		Trace: trace.Config{
			TraceSampleRate: 0.1,
			AppName:         program.Name,
			Agent:           program.Name,
		},
		Pebble: pebble.NewDefaultConfig(),
		Chain:  chain.NewDefaultConfig(),
		Rules:  *chain.NewDefaultRules(),
		Program: ProgramConfig{
			ProgramID:       p.ProgramID.ToBase58(),
			CoreID:          metadata.ProgramID.ToBase58(),
			ServerAuthority: p.ServerAuthority.ToBase58(),
			UpdateAuthority: p.UpdateAuthority.ToBase58(),
			LockAmount:      p.LockAmount,
			MaxSupply:       p.MaxSupply,
		},
		Airdrop: true,
	}
}

// Load reads [path] over the defaults. An empty [path] returns the defaults.
func Load(path string) (*Config, error) {
	c := NewDefaultConfig()
	if len(path) == 0 {
		return c, c.Verify()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return c, c.Verify()
}

func (c *Config) Verify() error {
	if len(c.HTTP.ListenAddress) == 0 {
		return ErrMissingListenAddress
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return ErrInvalidShutdown
	}
	if _, err := logging.ToLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ToLevel(c.Log.DisplayLevel); err != nil {
		return fmt.Errorf("%w: display level: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ProgramConfig(); err != nil {
		return err
	}
	_, err := c.CoreID()
	return err
}

// ProgramConfig parses the deployment the node runs.
func (c *Config) ProgramConfig() (program.Config, error) {
	var (
		cfg = program.Config{
			LockAmount:       c.Program.LockAmount,
			MaxSupply:        c.Program.MaxSupply,
			RecordDelegation: c.Program.RecordDelegation,
		}
		err error
	)
	for _, f := range []struct {
		name string
		in   string
		out  *codec.Address
	}{
		{"programID", c.Program.ProgramID, &cfg.ProgramID},
		{"serverAuthority", c.Program.ServerAuthority, &cfg.ServerAuthority},
		{"updateAuthority", c.Program.UpdateAuthority, &cfg.UpdateAuthority},
	} {
		if *f.out, err = codec.ParseAddress(f.in); err != nil {
			return program.Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, f.name, err)
		}
	}
	if err := cfg.Verify(); err != nil {
		return program.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c *Config) CoreID() (codec.Address, error) {
	id, err := codec.ParseAddress(c.Program.CoreID)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: coreID: %w", ErrInvalidConfig, err)
	}
	return id, nil
}

func (c *Config) LogLevels() (logging.Level, logging.Level, error) {
	level, err := logging.ToLevel(c.Log.Level)
	if err != nil {
		return 0, 0, err
	}
	display, err := logging.ToLevel(c.Log.DisplayLevel)
	if err != nil {
		return 0, 0, err
	}
	return level, display, nil
}
