// Package wallets builds the profile shown for a connected wallet.
package wallets

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"strings"

	"gebo/chains"
	"gebo/types"
)

// ErrInvalidAddress is returned for malformed wallet addresses
var ErrInvalidAddress = errors.New("invalid wallet address")

// MintLister returns the mints held by an address
type MintLister interface {
	ByOwner(ctx context.Context, owner string) ([]types.MintRecord, error)
}

// VideoLister returns every listing
type VideoLister interface {
	All(ctx context.Context) ([]types.Video, error)
}

// Service assembles wallet profiles
type Service struct {
	mints  MintLister
	videos VideoLister
}

// NewService creates a wallet Service
func NewService(mints MintLister, videos VideoLister) *Service {
	return &Service{mints: mints, videos: videos}
}

// Profile returns the wallet's tokens, created listings and creator-token
// balance. chainID is optional; when set it must be a supported chain.
func (s *Service) Profile(ctx context.Context, address string, chainID int64) (types.WalletProfile, error) {
	address = strings.TrimSpace(address)
	if !chains.IsAddress(address) {
		return types.WalletProfile{}, ErrInvalidAddress
	}
	if chainID != 0 && !chains.IsSupported(chainID) {
		return types.WalletProfile{}, chains.ErrUnsupportedChain
	}
	addr := chains.NormalizeAddress(address)

	owned, err := s.mints.ByOwner(ctx, addr)
	if err != nil {
		return types.WalletProfile{}, err
	}
	if chainID != 0 {
		filtered := owned[:0:0]
		for _, rec := range owned {
			if rec.ChainID == chainID {
				filtered = append(filtered, rec)
			}
		}
		owned = filtered
	}

	videos, err := s.videos.All(ctx)
	if err != nil {
		return types.WalletProfile{}, err
	}

	profile := types.WalletProfile{
		Address:             addr,
		DisplayName:         ShortAddress(addr),
		ChainID:             chainID,
		OwnedTokens:         owned,
		CreatedVideos:       []string{},
		CreatorTokenBalance: CreatorTokenBalance(addr),
	}
	for _, v := range videos {
		if chains.NormalizeAddress(v.Creator) != addr {
			continue
		}
		profile.CreatedVideos = append(profile.CreatedVideos, v.ID)
		if v.CreatorName != "" {
			profile.DisplayName = v.CreatorName
		}
	}
	return profile, nil
}

// ShortAddress renders 0x1234...abcd
func ShortAddress(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// CreatorTokenBalance is a mock balance derived from the address, stable
// across calls, in [0, 10000) with two decimals
func CreatorTokenBalance(addr string) float64 {
	sum := sha256.Sum256([]byte(chains.NormalizeAddress(addr)))
	cents := binary.BigEndian.Uint64(sum[:8]) % 1_000_000
	return float64(cents) / 100
}
