package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/nav"
	"github.com/mmcdole/minitube/internal/player"
	"github.com/mmcdole/minitube/internal/search"
	"github.com/mmcdole/minitube/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmClear:
		return m.renderCentered(styles.ModalStyle.Render(
			styles.TitleStyle.Render("Clear watch history?") + "\n\n" +
				styles.DimStyle.Render(fmt.Sprintf("%d videos will be removed. [y/n]", m.Library.History.Len())),
		))
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var overlay string
	if m.Player.Visible(m.Route()) {
		overlay = RenderMiniPlayer(m.Player.State(), m.Width)
	}

	used := lipgloss.Height(header) + lipgloss.Height(footer)
	if overlay != "" {
		used += lipgloss.Height(overlay)
	}
	bodyHeight := max(m.Height-used, 1)

	body := m.renderBody(bodyHeight)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	parts := []string{header, body}
	if overlay != "" {
		parts = append(parts, overlay)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the route title and, on the library route, the tabs
func (m Model) renderHeader() string {
	route := m.Route()
	title := styles.AccentStyle.Bold(true).Render("▶ minitube")

	var line string
	switch {
	case route == nav.Library:
		tabs := make([]string, len(libraryTabs))
		for i, kind := range libraryTabs {
			label := fmt.Sprintf("%s (%d)", kind, m.Library.Count(kind))
			if i == m.Tab {
				tabs[i] = styles.ActiveTabStyle.Render(label)
			} else {
				tabs[i] = styles.InactiveTabStyle.Render(label)
			}
		}
		line = lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	case route == nav.Subscriptions:
		line = styles.TitleStyle.Render(fmt.Sprintf("Subscriptions (%d)", m.Library.Subscriptions.Len()))
	case nav.IsWatch(route):
		line = styles.TitleStyle.Render("Watch")
	default:
		if id, ok := nav.ChannelID(route); ok {
			line = styles.TitleStyle.Render("Channel " + m.channelTitle(id))
		} else {
			line = styles.DimStyle.Render(route)
		}
	}

	filter := ""
	if m.State == StateFiltering || m.Filter.Value() != "" {
		filter = m.Filter.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title+"  "+line, filter)
}

// channelTitle finds a display name for channelID among local collections
func (m Model) channelTitle(channelID string) string {
	for _, c := range m.Library.Subscriptions.List() {
		if c.ChannelID == channelID && c.ChannelTitle != "" {
			return c.ChannelTitle
		}
	}
	if vids := m.channelVideos(channelID); len(vids) > 0 && vids[0].Channel != "" {
		return vids[0].Channel
	}
	return channelID
}

// renderBody renders the content area for the current route
func (m Model) renderBody(height int) string {
	route := m.Route()
	if nav.IsWatch(route) {
		v, ok := m.Watching()
		if !ok {
			return styles.DimStyle.Render("Video unavailable")
		}
		return m.renderWatch(v)
	}
	if route == nav.Subscriptions {
		return m.renderChannels(m.visibleChannels(), height)
	}
	if route == nav.Library {
		return m.renderVideos(m.visibleVideos(), height, emptyMessage(m.ActiveTab()))
	}
	if _, ok := nav.ChannelID(route); ok {
		return m.renderVideos(m.visibleVideos(), height, "No saved videos from this channel")
	}
	return styles.DimStyle.Render("Nothing to show here")
}

func emptyMessage(kind domain.CollectionKind) string {
	switch kind {
	case domain.CollectionWatchLater:
		return "No videos saved for later"
	case domain.CollectionLiked:
		return "No liked videos yet"
	case domain.CollectionHistory:
		return "No watch history yet"
	}
	return "Nothing here"
}

// window returns the first visible row so the cursor stays on screen
func window(cursor, total, height int) int {
	if total <= height || cursor < height/2 {
		return 0
	}
	return min(cursor-height/2, total-height)
}

func (m Model) renderVideos(rows []search.Match, height int, empty string) string {
	if len(rows) == 0 {
		if m.Filter.Value() != "" {
			return styles.DimStyle.Render("No matches")
		}
		return styles.DimStyle.Render(empty)
	}

	start := window(m.Cursor, len(rows), height)
	end := min(start+height, len(rows))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.RenderVideoItem(rows[i], i == m.Cursor, m.Width))
	}
	return strings.Join(lines, "\n")
}

// RenderVideoItem renders a single video row with liked/later badges
func (m Model) RenderVideoItem(row search.Match, selected bool, width int) string {
	v := row.Video
	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}

	var badges []string
	if m.Library.Liked.Contains(v.VideoID) {
		badges = append(badges, "♥")
	}
	if m.Library.WatchLater.Contains(v.VideoID) {
		badges = append(badges, "⏱")
	}
	suffix := ""
	if len(badges) > 0 {
		suffix = " " + strings.Join(badges, " ")
	}

	meta := v.Channel
	if !v.WatchedAt.IsZero() {
		meta += " · " + formatWatched(v.WatchedAt)
	}

	titleWidth := max(width-lipgloss.Width(meta)-lipgloss.Width(suffix)-6, 10)
	title := styles.Truncate(v.Title, titleWidth)
	matched := row.MatchedIndexes
	if title != v.Title {
		matched = nil
	}

	return base.Render(styles.Highlight(title, matched, base)+suffix) + " " + styles.DimStyle.Render(meta)
}

func (m Model) renderChannels(rows []domain.ChannelRef, height int) string {
	if len(rows) == 0 {
		if m.Filter.Value() != "" {
			return styles.DimStyle.Render("No matches")
		}
		return styles.DimStyle.Render("No subscriptions yet")
	}

	start := window(m.Cursor, len(rows), height)
	end := min(start+height, len(rows))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := styles.NormalItemStyle
		if i == m.Cursor {
			style = styles.SelectedItemStyle
		}
		lines = append(lines, style.Render(styles.Truncate(rows[i].ChannelTitle, max(m.Width-4, 10))))
	}
	return strings.Join(lines, "\n")
}

// renderWatch renders the video-detail page
func (m Model) renderWatch(v domain.VideoRef) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(v.Channel))
	b.WriteString("\n\n")

	var badges []string
	if m.Library.Liked.Contains(v.VideoID) {
		badges = append(badges, styles.BadgeStyle.Render("Liked"))
	} else {
		badges = append(badges, styles.DimBadgeStyle.Render("Like"))
	}
	if m.Library.WatchLater.Contains(v.VideoID) {
		badges = append(badges, styles.BadgeStyle.Render("Saved"))
	} else {
		badges = append(badges, styles.DimBadgeStyle.Render("Watch later"))
	}
	if m.Library.Subscriptions.Contains(v.ChannelID) {
		badges = append(badges, styles.BadgeStyle.Render("Subscribed"))
	} else if v.ChannelID != "" {
		badges = append(badges, styles.DimBadgeStyle.Render("Subscribe"))
	}
	b.WriteString(strings.Join(badges, " "))

	if v.Thumbnail != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render(v.Thumbnail))
	}
	return b.String()
}

// RenderMiniPlayer renders the floating player overlay
func RenderMiniPlayer(state domain.PlayerState, width int) string {
	icon := "▶"
	if player.StatusOf(state) == player.StatusPaused {
		icon = "⏸"
	}
	inner := max(width-6, 10)
	line := styles.AccentStyle.Render(icon) + " " +
		styles.TitleStyle.Render(styles.Truncate(state.Title, inner/2)) + "  " +
		styles.DimStyle.Render(styles.Truncate(state.Channel, inner/3))
	hint := styles.DimStyle.Render("p pause · o expand · x close")
	return styles.MiniPlayerStyle.Width(max(width-2, 10)).Render(line + "\n" + hint)
}

// renderFooter renders the status line or key hints
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	hints := []key.Binding{Keys.Enter, Keys.Like, Keys.WatchLater, Keys.Subscribe, Keys.Minimize, Keys.Filter, Keys.Help, Keys.Quit}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.HelpKeyStyle.Render(h.Help().Key) + " " + styles.HelpDescStyle.Render(h.Help().Desc)
	}
	return strings.Join(parts, "  ")
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, group := range Keys.HelpBindings() {
		b.WriteString("\n")
		for _, k := range group {
			b.WriteString(fmt.Sprintf("%s  %s\n",
				styles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", k.Help().Key)),
				styles.HelpDescStyle.Render(k.Help().Desc)))
		}
	}
	return m.renderCentered(styles.ModalStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func (m Model) renderCentered(content string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

// formatWatched renders a history timestamp relative to now
func formatWatched(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Local().Format("Jan 2, 2006")
}
