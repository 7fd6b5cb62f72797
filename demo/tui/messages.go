package tui

import "gebo/types"

// VideosLoadedMsg is sent when a listing page arrives
type VideosLoadedMsg struct {
	Query string
	Page  *types.VideoPage
	Err   error
}

// PricingLoadedMsg is sent when a pricing insight arrives
type PricingLoadedMsg struct {
	VideoID string
	Insight *types.PricingInsight
	Err     error
}
