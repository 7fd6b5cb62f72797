package tui

import (
	"fmt"
	"strings"

	"gebo/types"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	if m.Searching {
		b.WriteString(SearchBarStyle.Render(TextSearchPrompt + m.SearchInput + "█"))
		b.WriteString("\n\n")
	} else if m.Query != "" {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("🔍 \"%s\" (%d results)", m.Query, m.Total)))
		b.WriteString("\n\n")
	}

	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", m.Err)))
		b.WriteString("\n\n")
	}

	switch {
	case m.Loading && len(m.Videos) == 0:
		b.WriteString(MutedStyle.Render(TextLoading))
		b.WriteString("\n\n")
	case len(m.Videos) == 0:
		b.WriteString(MutedStyle.Render(TextEmpty))
		b.WriteString("\n\n")
	default:
		for i, v := range m.Videos {
			line := fmt.Sprintf("%-44s %-13s %8s views", truncate(v.Title, 44), v.Category, compact(v.Views))
			if i == m.Cursor {
				b.WriteString(SelectedRowStyle.Render("▸ " + line))
			} else {
				b.WriteString("  " + line)
			}
			if v.Minted {
				b.WriteString(MintedBadgeStyle.Render(" ◆ minted"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if v, ok := m.Selected(); ok {
			b.WriteString(DetailCardStyle.Render(m.formatDetails(v)))
			b.WriteString("\n\n")
		}
	}

	footer := TextFooterBrowse
	if m.Searching {
		footer = TextFooterSearch
	}
	b.WriteString(MutedStyle.Render(footer))
	return b.String()
}

// formatDetails renders the selected video and its pricing insight
func (m Model) formatDetails(v types.Video) string {
	var b strings.Builder

	b.WriteString(VideoTitleStyle.Render(v.Title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Creator: %s\n", v.CreatorName))
	b.WriteString(fmt.Sprintf("Duration: %dm%02ds | 👍 %s | 💬 %s\n",
		v.DurationSeconds/60, v.DurationSeconds%60, compact(v.Likes), compact(v.Comments)))
	if v.PriceETH > 0 {
		b.WriteString(fmt.Sprintf("Listed at: %.4f ETH\n", v.PriceETH))
	}

	switch p := m.Pricing[v.ID]; {
	case m.LoadingPricing == v.ID:
		b.WriteString("\n" + PriceStyle.Render("⏳ Predicting revenue..."))
	case p != nil:
		b.WriteString("\n" + PriceStyle.Render(fmt.Sprintf("💰 Suggested price: %.4f ETH", p.SuggestedPriceETH)))
		b.WriteString(fmt.Sprintf("\n   Range: %.4f to %.4f ETH", p.MinPriceETH, p.MaxPriceETH))
		b.WriteString(fmt.Sprintf("\n   Predicted revenue: $%.2f (confidence %.0f%%, %s)",
			p.PredictedRevenueUSD, p.Confidence*100, p.Source))
	default:
		b.WriteString("\n" + MutedStyle.Render("Press enter for pricing insight"))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// compact renders counts as 950, 12.3K, 1.2M
func compact(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
