package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `---
json_rpc_url: "https://api.testnet.solana.com"
websocket_url: ""
keypair_path: /home/sol/.config/solana/id.json
address_labels:
  "11111111111111111111111111111111": System Program
commitment: confirmed
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "https://api.testnet.solana.com", cfg.JSONRPCURL)
	assert.Equal(t, "confirmed", cfg.Commitment)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, vamp.ErrArgument)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.JSONRPCURL)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "json_rpc_url: [unterminated"))
	assert.ErrorIs(t, err, vamp.ErrArgument)
}

func TestResolveURL(t *testing.T) {
	empty := &SolanaConfig{}
	fromFile := &SolanaConfig{JSONRPCURL: "http://10.0.0.1:8899"}

	cases := []struct {
		cfg  *SolanaConfig
		flag string
		want string
	}{
		{empty, "", rpc.MainNetBeta_RPC},
		{nil, "", rpc.MainNetBeta_RPC},
		{empty, "m", rpc.MainNetBeta_RPC},
		{empty, "mainnet", rpc.MainNetBeta_RPC},
		{empty, "d", rpc.DevNet_RPC},
		{empty, "devnet", rpc.DevNet_RPC},
		{empty, "t", rpc.TestNet_RPC},
		{empty, "testnet", rpc.TestNet_RPC},
		{empty, "l", rpc.LocalNet_RPC},
		{empty, "localhost", rpc.LocalNet_RPC},
		{empty, "https://rpc.example.com", "https://rpc.example.com"},
		{fromFile, "", "http://10.0.0.1:8899"},
		{fromFile, "d", rpc.DevNet_RPC},
		{&SolanaConfig{JSONRPCURL: "t"}, "", rpc.TestNet_RPC},
		{empty, "localhost:8899", "http://localhost:8899"},
		{empty, "ws://node:8900", "ws://node:8900"},
		{fromFile, "mars", "http://mars"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.cfg.ResolveURL(c.flag), "flag %q", c.flag)
	}
}

func TestParseCommitment(t *testing.T) {
	for in, want := range map[string]rpc.CommitmentType{
		"":             rpc.CommitmentFinalized,
		"processed":    rpc.CommitmentProcessed,
		"confirmed":    rpc.CommitmentConfirmed,
		"finalized":    rpc.CommitmentFinalized,
		"singleGossip": rpc.CommitmentSingleGossip,
		"max":          rpc.CommitmentMax,
	} {
		got, err := ParseCommitment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCommitment("eventually")
	assert.ErrorIs(t, err, vamp.ErrArgument)
}

func TestResolveCommitment(t *testing.T) {
	cfg := &SolanaConfig{Commitment: "processed"}

	got, err := cfg.ResolveCommitment("")
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentProcessed, got)

	got, err = cfg.ResolveCommitment("confirmed")
	require.NoError(t, err)
	assert.Equal(t, rpc.CommitmentConfirmed, got)
}
