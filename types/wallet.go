package types

import "time"

// Mint statuses
const (
	MintPending   = "pending"
	MintConfirmed = "confirmed"
)

// MintRequest is reported by the client once the wallet has sent the mint transaction
type MintRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	ChainID int64  `json:"chain_id" binding:"required"`
	Owner   string `json:"owner" binding:"required"`
	TxHash  string `json:"tx_hash" binding:"required"`
	TokenID string `json:"token_id"`
}

// MintRecord tracks a minted video NFT
type MintRecord struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	ChainID   int64     `json:"chain_id"`
	Contract  string    `json:"contract"`
	TokenID   string    `json:"token_id"`
	Owner     string    `json:"owner"`
	TxHash    string    `json:"tx_hash"`
	TokenURI  string    `json:"token_uri"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletProfile summarizes a connected wallet
type WalletProfile struct {
	Address             string       `json:"address"`
	DisplayName         string       `json:"display_name"`
	ChainID             int64        `json:"chain_id,omitempty"`
	OwnedTokens         []MintRecord `json:"owned_tokens"`
	CreatedVideos       []string     `json:"created_videos"`
	CreatorTokenBalance float64      `json:"creator_token_balance"`
}

// UploadResult is returned by the upload endpoint
type UploadResult struct {
	CID          string `json:"cid"`
	FileName     string `json:"file_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
	Stored       bool   `json:"stored"`
	Key          string `json:"key,omitempty"`
	ThumbnailKey string `json:"thumbnail_key,omitempty"`
}
