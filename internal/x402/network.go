package x402

import (
	"errors"
	"strings"
)

// Network identifies the payment network an intent settles on.
type Network string

const (
	NetworkSolanaDevnet  Network = "solana:devnet"
	NetworkSolanaMainnet Network = "solana:mainnet"
)

var ErrInvalidNetwork = errors.New("invalid_network")

// ParseNetwork validates a network value against the closed set. The empty
// string is not a member; callers substitute the configured default first.
func ParseNetwork(value string) (Network, error) {
	switch Network(strings.TrimSpace(value)) {
	case NetworkSolanaDevnet:
		return NetworkSolanaDevnet, nil
	case NetworkSolanaMainnet:
		return NetworkSolanaMainnet, nil
	default:
		return "", ErrInvalidNetwork
	}
}

func (n Network) String() string {
	return string(n)
}
