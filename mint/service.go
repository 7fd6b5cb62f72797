// Package mint records video NFT mints reported by wallets. The contract
// call itself happens client-side; the backend validates the report, serves
// token metadata and indexes ownership.
package mint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gebo/chains"
	"gebo/listings"
	"gebo/shared/kafka"
	"gebo/types"

	"github.com/google/uuid"
)

var (
	// ErrContractNotDeployed is returned for chains without a VideoNFT contract
	ErrContractNotDeployed = errors.New("video NFT contract is not deployed on this chain")
	// ErrInvalidOwner is returned for malformed owner addresses
	ErrInvalidOwner = errors.New("invalid owner address")
	// ErrInvalidTxHash is returned for malformed transaction hashes
	ErrInvalidTxHash = errors.New("invalid transaction hash")
	// ErrInvalidTokenID is returned for non-numeric token ids
	ErrInvalidTokenID = errors.New("token id must be a decimal number")
	// ErrAlreadyMinted is returned when a listing already has a token
	ErrAlreadyMinted = errors.New("video is already minted")
)

// VideoStore is the part of the listing store minting needs
type VideoStore interface {
	Get(ctx context.Context, id string) (types.Video, error)
	MarkMinted(ctx context.Context, id string, chainID int64, tokenID string) error
}

// Publisher sends events to the mint topic
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
}

// MintEvent is published for every accepted mint
type MintEvent struct {
	Record    types.MintRecord `json:"record"`
	EmittedAt time.Time        `json:"emitted_at"`
}

// Service validates and records mints
type Service struct {
	videos    VideoStore
	registry  Registry
	publisher Publisher
	baseURL   string
	now       func() time.Time
}

// NewService creates a mint Service. With a nil publisher mints are applied
// synchronously.
func NewService(videos VideoStore, registry Registry, publisher Publisher, baseURL string) *Service {
	return &Service{
		videos:    videos,
		registry:  registry,
		publisher: publisher,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// Metadata returns the token metadata for a listing
func (s *Service) Metadata(ctx context.Context, videoID string) (Metadata, error) {
	v, err := s.videos.Get(ctx, videoID)
	if err != nil {
		return Metadata{}, err
	}
	return BuildMetadata(v, s.baseURL), nil
}

// RecordMint validates a reported mint and records it
func (s *Service) RecordMint(ctx context.Context, req types.MintRequest) (types.MintRecord, error) {
	contracts, err := chains.ContractsFor(req.ChainID)
	if err != nil {
		return types.MintRecord{}, err
	}
	if !contracts.Deployed() {
		return types.MintRecord{}, ErrContractNotDeployed
	}
	if !chains.IsAddress(strings.TrimSpace(req.Owner)) {
		return types.MintRecord{}, ErrInvalidOwner
	}
	if !chains.IsTxHash(strings.TrimSpace(req.TxHash)) {
		return types.MintRecord{}, ErrInvalidTxHash
	}
	if req.TokenID != "" && !isDecimal(req.TokenID) {
		return types.MintRecord{}, ErrInvalidTokenID
	}

	v, err := s.videos.Get(ctx, req.VideoID)
	if err != nil {
		return types.MintRecord{}, err
	}
	if v.Minted {
		return types.MintRecord{}, ErrAlreadyMinted
	}

	rec := types.MintRecord{
		ID:        uuid.NewString(),
		VideoID:   v.ID,
		ChainID:   req.ChainID,
		Contract:  contracts.VideoNFT,
		TokenID:   req.TokenID,
		Owner:     chains.NormalizeAddress(req.Owner),
		TxHash:    strings.ToLower(strings.TrimSpace(req.TxHash)),
		TokenURI:  TokenURI(s.baseURL, v.ID),
		Status:    types.MintConfirmed,
		CreatedAt: s.now().UTC(),
	}
	event := MintEvent{Record: rec, EmittedAt: rec.CreatedAt}

	claimed, err := s.registry.Claim(ctx, v.ID, rec.ID)
	if err != nil {
		return types.MintRecord{}, err
	}
	if !claimed {
		return types.MintRecord{}, ErrAlreadyMinted
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, rec.VideoID, event)
		if err == nil {
			log.Printf("Published mint %s for %s on chain %d", rec.ID, rec.VideoID, rec.ChainID)
			return rec, nil
		}
		log.Printf("Warning: mint event publish failed, applying directly: %v", err)
	}

	if err := s.Apply(ctx, event); err != nil {
		return types.MintRecord{}, err
	}
	return rec, nil
}

// Apply marks the listing minted and stores the record. Replaying an event
// is harmless; an event for a video already claimed by another record is
// skipped.
func (s *Service) Apply(ctx context.Context, ev MintEvent) error {
	rec := ev.Record
	claimed, err := s.registry.Claim(ctx, rec.VideoID, rec.ID)
	if err != nil {
		return err
	}
	if !claimed {
		log.Printf("Warning: skipping mint %s, video %s is already minted", rec.ID, rec.VideoID)
		return nil
	}
	if err := s.videos.MarkMinted(ctx, rec.VideoID, rec.ChainID, rec.TokenID); err != nil {
		if rerr := s.registry.Release(ctx, rec.VideoID, rec.ID); rerr != nil {
			log.Printf("Warning: %v", rerr)
		}
		return fmt.Errorf("failed to mark %s minted: %w", rec.VideoID, err)
	}
	if err := s.registry.Save(ctx, rec); err != nil {
		return err
	}
	return nil
}

// ByOwner lists the mints held by an address
func (s *Service) ByOwner(ctx context.Context, owner string) ([]types.MintRecord, error) {
	if !chains.IsAddress(strings.TrimSpace(owner)) {
		return nil, ErrInvalidOwner
	}
	return s.registry.ByOwner(ctx, owner)
}

// EventHandler applies consumed mint events. Malformed events are skipped.
func (s *Service) EventHandler() *kafka.TypedMessageHandler[MintEvent] {
	return &kafka.TypedMessageHandler[MintEvent]{
		Validate: func(ev *MintEvent) bool {
			return ev.Record.ID != "" && ev.Record.VideoID != "" && chains.IsAddress(ev.Record.Owner)
		},
		Process: func(ctx context.Context, ev *MintEvent) error {
			err := s.Apply(ctx, *ev)
			if errors.Is(err, listings.ErrNotFound) {
				log.Printf("Warning: dropping mint %s for unknown video %s", ev.Record.ID, ev.Record.VideoID)
				return nil
			}
			return err
		},
		AlwaysMark: true,
	}
}

func isDecimal(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
