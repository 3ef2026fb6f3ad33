// Package config resolves cluster connection settings from command-line
// values and the Solana CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const DefaultCommitment = rpc.CommitmentFinalized

// SolanaConfig holds the keys of the Solana CLI config.yml that affect
// how transactions are sent.
type SolanaConfig struct {
	JSONRPCURL string `yaml:"json_rpc_url"`
	Commitment string `yaml:"commitment"`
}

// DefaultConfigPath is where the Solana CLI keeps its configuration.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "solana", "cli", "config.yml")
}

// Load reads a Solana CLI config file. With an empty path the default
// location is tried and a missing file yields an empty config. A path given
// explicitly must exist.
func Load(path string) (*SolanaConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return &SolanaConfig{}, nil
		}
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		klog.V(3).Infof("no solana config at %s", path)
		return &SolanaConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config %s: %v", vamp.ErrArgument, path, err)
	}

	var cfg SolanaConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config %s: %v", vamp.ErrArgument, path, err)
	}
	klog.V(3).Infof("loaded solana config from %s", path)
	return &cfg, nil
}

var clusterAliases = map[string]string{
	"l":         rpc.LocalNet_RPC,
	"localhost": rpc.LocalNet_RPC,
	"d":         rpc.DevNet_RPC,
	"devnet":    rpc.DevNet_RPC,
	"t":         rpc.TestNet_RPC,
	"testnet":   rpc.TestNet_RPC,
	"m":         rpc.MainNetBeta_RPC,
	"mainnet":   rpc.MainNetBeta_RPC,
}

// ResolveURL picks the RPC endpoint: the --url value (alias or URL) wins,
// then the config file, then mainnet-beta. Anything that is not an alias is
// used as given.
func (c *SolanaConfig) ResolveURL(flag string) string {
	value := strings.TrimSpace(flag)
	if value == "" && c != nil {
		value = strings.TrimSpace(c.JSONRPCURL)
	}
	if value == "" {
		return rpc.MainNetBeta_RPC
	}
	if url, ok := clusterAliases[value]; ok {
		return url
	}
	if !strings.Contains(value, "://") {
		// host:port, as accepted by the Solana CLI
		return "http://" + value
	}
	return value
}

// ResolveCommitment applies the same precedence as ResolveURL to the
// commitment level.
func (c *SolanaConfig) ResolveCommitment(flag string) (rpc.CommitmentType, error) {
	value := flag
	if value == "" && c != nil {
		value = c.Commitment
	}
	return ParseCommitment(value)
}

// ParseCommitment accepts the current commitment names and the deprecated
// ones still understood by validators. Empty means DefaultCommitment.
func ParseCommitment(value string) (rpc.CommitmentType, error) {
	switch c := rpc.CommitmentType(strings.TrimSpace(value)); c {
	case "":
		return DefaultCommitment, nil
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized,
		rpc.CommitmentRecent, rpc.CommitmentSingle, rpc.CommitmentSingleGossip,
		rpc.CommitmentRoot, rpc.CommitmentMax:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown commitment %q", vamp.ErrArgument, value)
}
