package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKeyPress(msg)
	case VideosLoadedMsg:
		return m.handleVideosLoaded(msg)
	case PricingLoadedMsg:
		return m.handlePricingLoaded(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input while browsing
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Videos)-1 {
			m.Cursor++
		}
	case "enter":
		v, ok := m.Selected()
		if !ok || m.LoadingPricing == v.ID {
			return m, nil
		}
		m.LoadingPricing = v.ID
		return m, fetchPricing(m.Client, v.ID)
	case "/":
		m.Searching = true
		m.SearchInput = m.Query
	case "r":
		m.Loading = true
		m.Err = nil
		return m, fetchVideos(m.Client, m.Query)
	}
	return m, nil
}

// handleSearchKey edits the search input
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.Searching = false
		m.SearchInput = ""
	case tea.KeyEnter:
		m.Searching = false
		m.Query = m.SearchInput
		m.Loading = true
		return m, fetchVideos(m.Client, m.Query)
	case tea.KeyBackspace:
		if r := []rune(m.SearchInput); len(r) > 0 {
			m.SearchInput = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.SearchInput += " "
	case tea.KeyRunes:
		m.SearchInput += string(msg.Runes)
	}
	return m, nil
}

// handleVideosLoaded replaces the list, keeping the cursor in range
func (m Model) handleVideosLoaded(msg VideosLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Query != m.Query {
		// stale response for an earlier search
		return m, nil
	}
	m.Loading = false
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Err = nil
	m.Videos = msg.Page.Videos
	m.Total = msg.Page.Total
	if m.Cursor >= len(m.Videos) {
		m.Cursor = len(m.Videos) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m, nil
}

// handlePricingLoaded stores a pricing insight
func (m Model) handlePricingLoaded(msg PricingLoadedMsg) (tea.Model, tea.Cmd) {
	if m.LoadingPricing == msg.VideoID {
		m.LoadingPricing = ""
	}
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Pricing[msg.VideoID] = msg.Insight
	return m, nil
}
