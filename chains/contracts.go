package chains

import (
	"os"
	"strconv"
	"strings"
)

// ZeroAddress marks a contract that is not deployed on a chain
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Contracts holds the marketplace contract addresses on one chain
type Contracts struct {
	ChainID      int64  `json:"chain_id"`
	VideoNFT     string `json:"video_nft"`
	CreatorToken string `json:"creator_token"`
}

// Deployed reports whether the VideoNFT contract exists on the chain
func (c Contracts) Deployed() bool {
	return c.VideoNFT != "" && c.VideoNFT != ZeroAddress
}

// Hardhat's first two deployments from the default account land on these
// addresses, so a fresh local node needs no env setup.
var fallbackContracts = map[int64]Contracts{
	Hardhat: {
		VideoNFT:     "0x5fbdb2315678afecb367f032d93f642f64180aa3",
		CreatorToken: "0xe7f1725e7734ce288f8367e1bb143e90bb3f0512",
	},
}

// ContractsFor returns the addresses for id. Env VIDEO_NFT_ADDRESS_<id> and
// CREATOR_TOKEN_ADDRESS_<id> override the built-in table.
func ContractsFor(id int64) (Contracts, error) {
	if !IsSupported(id) {
		return Contracts{}, ErrUnsupportedChain
	}

	c := fallbackContracts[id]
	c.ChainID = id
	suffix := strconv.FormatInt(id, 10)

	if v := strings.TrimSpace(os.Getenv("VIDEO_NFT_ADDRESS_" + suffix)); IsAddress(v) {
		c.VideoNFT = NormalizeAddress(v)
	}
	if v := strings.TrimSpace(os.Getenv("CREATOR_TOKEN_ADDRESS_" + suffix)); IsAddress(v) {
		c.CreatorToken = NormalizeAddress(v)
	}
	if c.VideoNFT == "" {
		c.VideoNFT = ZeroAddress
	}
	if c.CreatorToken == "" {
		c.CreatorToken = ZeroAddress
	}
	return c, nil
}

// IsAddress validates a 0x-prefixed 20-byte hex address. Checksum casing is
// not verified.
func IsAddress(s string) bool {
	return isHex(s, 40)
}

// IsTxHash validates a 0x-prefixed 32-byte hex transaction hash
func IsTxHash(s string) bool {
	return isHex(s, 64)
}

// NormalizeAddress lower-cases an address for comparison and storage
func NormalizeAddress(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isHex(s string, digits int) bool {
	if len(s) != digits+2 || (s[:2] != "0x" && s[:2] != "0X") {
		return false
	}
	for _, r := range s[2:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
