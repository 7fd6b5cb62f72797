package tui

// UI Text Constants
const (
	TextTitle        = "🎬 Gebo Marketplace"
	TextLoading      = "⏳ Loading videos..."
	TextEmpty        = "No videos match this search"
	TextSearchPrompt = "Search: "

	// Footer
	TextFooterBrowse = "↑/↓ select | enter pricing | / search | r refresh | q quit"
	TextFooterSearch = "enter search | esc cancel"
)
