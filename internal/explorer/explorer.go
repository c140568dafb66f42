// Package explorer builds Solana explorer links for settled payments.
package explorer

import (
	"fmt"
	"strings"
)

const baseURL = "https://explorer.solana.com"

// ClusterFor maps a network string onto an explorer cluster. Any value
// containing "mainnet" selects mainnet-beta; everything else is devnet.
func ClusterFor(network string) string {
	if strings.Contains(network, "mainnet") {
		return "mainnet-beta"
	}
	return "devnet"
}

// TransactionURL returns the explorer link for a transaction signature.
func TransactionURL(signature, network string) string {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s?cluster=%s", baseURL, signature, ClusterFor(network))
}
