// Package config provides configuration of the review network tooling.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/storage/dbconfig"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/contracts/review"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Logger  Logger                   `yaml:"Logger"`
	Storage dbconfig.DBConfiguration `yaml:"Storage"`
	Network Network                  `yaml:"Network"`
}

// Logger configures the log output.
type Logger struct {
	// One of zap levels: debug, info, warn, error.
	Level string `yaml:"Level"`
	// console or json.
	Encoding string `yaml:"Encoding"`
}

// Network describes the deployed network.
type Network struct {
	// Neo address of the administrator.
	Admin string `yaml:"Admin"`
	// Reference of the logic module to activate.
	Implementation string `yaml:"Implementation"`
	// Number of validators chosen for each review.
	CommitteeSize int `yaml:"CommitteeSize"`
	// Neo addresses of the initial validators.
	Validators []string `yaml:"Validators"`
	// Initial REW token distribution.
	Allocations []Allocation `yaml:"Allocations"`
}

// Allocation is an initial REW token distribution entry.
type Allocation struct {
	Account string `yaml:"Account"`
	Amount  int64  `yaml:"Amount"`
}

// Default returns configuration of the in-memory network.
func Default() Config {
	return Config{
		Logger: Logger{
			Level:    "info",
			Encoding: "console",
		},
		Storage: dbconfig.DBConfiguration{
			Type: dbconfig.InMemoryDB,
		},
		Network: Network{
			Implementation: reviewnet.Name,
			CommitteeSize:  review.DefaultCommitteeSize,
		},
	}
}

// Load reads YAML configuration file. Missing values are taken from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration. Missing values are taken from Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode YAML: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks configuration consistency.
func (c Config) Validate() error {
	switch c.Storage.Type {
	case dbconfig.InMemoryDB:
	case dbconfig.BoltDB:
		if c.Storage.BoltDBOptions.FilePath == "" {
			return errors.New("missing BoltDB file path")
		}
	case dbconfig.LevelDB:
		if c.Storage.LevelDBOptions.DataDirectoryPath == "" {
			return errors.New("missing LevelDB directory path")
		}
	default:
		return fmt.Errorf("unsupported storage type '%s'", c.Storage.Type)
	}

	if c.Network.CommitteeSize <= 0 {
		return fmt.Errorf("non-positive committee size %d", c.Network.CommitteeSize)
	}

	if c.Network.Admin != "" {
		if _, err := c.Network.AdminAccount(); err != nil {
			return err
		}
	}

	if _, err := c.Network.ValidatorAccounts(); err != nil {
		return err
	}

	for i := range c.Network.Allocations {
		if _, err := address.StringToUint160(c.Network.Allocations[i].Account); err != nil {
			return fmt.Errorf("invalid allocation account #%d: %w", i, err)
		}
		if c.Network.Allocations[i].Amount <= 0 {
			return fmt.Errorf("non-positive allocation amount #%d", i)
		}
	}

	_, err := zapcore.ParseLevel(c.Logger.Level)
	if err != nil {
		return fmt.Errorf("invalid logger level: %w", err)
	}

	if c.Logger.Encoding != "console" && c.Logger.Encoding != "json" {
		return fmt.Errorf("unsupported logger encoding '%s'", c.Logger.Encoding)
	}

	return nil
}

// AdminAccount decodes administrator address.
func (n Network) AdminAccount() (util.Uint160, error) {
	acc, err := address.StringToUint160(n.Admin)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid administrator address: %w", err)
	}

	return acc, nil
}

// ValidatorAccounts decodes validator addresses.
func (n Network) ValidatorAccounts() ([]util.Uint160, error) {
	res := make([]util.Uint160, len(n.Validators))

	for i := range n.Validators {
		var err error

		res[i], err = address.StringToUint160(n.Validators[i])
		if err != nil {
			return nil, fmt.Errorf("invalid validator address #%d: %w", i, err)
		}
	}

	return res, nil
}

// NewLogger creates logger described by the configuration.
func (l Logger) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(lvl)
	c.Encoding = l.Encoding
	c.Sampling = nil

	if c.Encoding == "console" {
		c.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return c.Build()
}
