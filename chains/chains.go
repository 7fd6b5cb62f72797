// Package chains holds the EVM chain table the marketplace supports and the
// wallet RPC payloads (wallet_switchEthereumChain, wallet_addEthereumChain)
// derived from it.
package chains

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Supported chain IDs
const (
	Ethereum int64 = 1
	Polygon  int64 = 137
	Mumbai   int64 = 80001
	Amoy     int64 = 80002
	Hardhat  int64 = 31337
)

// ErrUnsupportedChain is returned for chain IDs outside the table
var ErrUnsupportedChain = errors.New("unsupported chain")

// NativeCurrency mirrors the wallet_addEthereumChain nativeCurrency object
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// Chain describes one supported network
type Chain struct {
	ID          int64          `json:"id"`
	HexID       string         `json:"hex_id"`
	Name        string         `json:"name"`
	Currency    NativeCurrency `json:"native_currency"`
	RPCURLs     []string       `json:"rpc_urls"`
	ExplorerURL string         `json:"explorer_url,omitempty"`
	Testnet     bool           `json:"testnet"`
}

var table = map[int64]Chain{
	Ethereum: {
		ID:          Ethereum,
		Name:        "Ethereum Mainnet",
		Currency:    NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCURLs:     []string{"https://cloudflare-eth.com"},
		ExplorerURL: "https://etherscan.io",
	},
	Polygon: {
		ID:          Polygon,
		Name:        "Polygon Mainnet",
		Currency:    NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		RPCURLs:     []string{"https://polygon-rpc.com"},
		ExplorerURL: "https://polygonscan.com",
	},
	Mumbai: {
		ID:          Mumbai,
		Name:        "Polygon Mumbai",
		Currency:    NativeCurrency{Name: "MATIC", Symbol: "MATIC", Decimals: 18},
		RPCURLs:     []string{"https://rpc-mumbai.maticvigil.com"},
		ExplorerURL: "https://mumbai.polygonscan.com",
		Testnet:     true,
	},
	Amoy: {
		ID:          Amoy,
		Name:        "Polygon Amoy",
		Currency:    NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		RPCURLs:     []string{"https://rpc-amoy.polygon.technology"},
		ExplorerURL: "https://amoy.polygonscan.com",
		Testnet:     true,
	},
	Hardhat: {
		ID:       Hardhat,
		Name:     "Hardhat Local",
		Currency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCURLs:  []string{"http://127.0.0.1:8545"},
		Testnet:  true,
	},
}

// Lookup returns the chain for id
func Lookup(id int64) (Chain, error) {
	c, ok := table[id]
	if !ok {
		return Chain{}, fmt.Errorf("%w: %d", ErrUnsupportedChain, id)
	}
	c.HexID = HexChainID(id)
	return c, nil
}

// IsSupported reports whether id is in the table
func IsSupported(id int64) bool {
	_, ok := table[id]
	return ok
}

// All returns every supported chain ordered by ID
func All() []Chain {
	out := make([]Chain, 0, len(table))
	for id := range table {
		c, _ := Lookup(id)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HexChainID formats id the way eth_chainId reports it
func HexChainID(id int64) string {
	return "0x" + strconv.FormatInt(id, 16)
}

// ParseChainID accepts a decimal ("137") or 0x-hex ("0x89") chain ID
func ParseChainID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty chain id")
	}
	var (
		id  int64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		id, err = strconv.ParseInt(s[2:], 16, 64)
	} else {
		id, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid chain id %q", s)
	}
	return id, nil
}

// SwitchParams is the single parameter object for wallet_switchEthereumChain
func SwitchParams(id int64) (map[string]string, error) {
	if !IsSupported(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChain, id)
	}
	return map[string]string{"chainId": HexChainID(id)}, nil
}

// AddChainParams is the parameter object for wallet_addEthereumChain
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

// AddParams builds the wallet_addEthereumChain payload for id
func AddParams(id int64) (AddChainParams, error) {
	c, err := Lookup(id)
	if err != nil {
		return AddChainParams{}, err
	}
	p := AddChainParams{
		ChainID:        c.HexID,
		ChainName:      c.Name,
		NativeCurrency: c.Currency,
		RPCURLs:        append([]string(nil), c.RPCURLs...),
	}
	if c.ExplorerURL != "" {
		p.BlockExplorerURLs = []string{c.ExplorerURL}
	}
	return p, nil
}

// ExplorerTxURL links a transaction on the chain's block explorer, or "" when
// the chain has none
func ExplorerTxURL(id int64, txHash string) string {
	c, ok := table[id]
	if !ok || c.ExplorerURL == "" {
		return ""
	}
	return c.ExplorerURL + "/tx/" + txHash
}
