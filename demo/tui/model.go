package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gebo/types"
)

// Model is the marketplace browser state
type Model struct {
	Client *APIClient

	Videos []types.Video
	Total  int
	Cursor int

	// Query is the active search; SearchInput is being typed while Searching
	Query       string
	Searching   bool
	SearchInput string

	Pricing        map[string]*types.PricingInsight
	LoadingPricing string

	Loading bool
	Err     error
}

// NewModel creates a browser for the API at baseURL
func NewModel(baseURL string) Model {
	return Model{
		Client:  NewAPIClient(baseURL),
		Pricing: make(map[string]*types.PricingInsight),
		Loading: true,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return fetchVideos(m.Client, m.Query)
}

// Selected returns the video under the cursor
func (m Model) Selected() (types.Video, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Videos) {
		return types.Video{}, false
	}
	return m.Videos[m.Cursor], true
}
