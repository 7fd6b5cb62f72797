package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// fetchVideos creates a command to load the listing page for query
func fetchVideos(client *APIClient, query string) tea.Cmd {
	return func() tea.Msg {
		page, err := client.ListVideos(query)
		return VideosLoadedMsg{Query: query, Page: page, Err: err}
	}
}

// fetchPricing creates a command to load the pricing insight for a video
func fetchPricing(client *APIClient, videoID string) tea.Cmd {
	return func() tea.Msg {
		insight, err := client.Pricing(videoID)
		return PricingLoadedMsg{VideoID: videoID, Insight: insight, Err: err}
	}
}
