package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/purse/internal/tui/styles"
)

func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	body := m.current().column.View()
	if m.ShowInspector {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.Inspector.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), body, m.renderFooter())
}

func (m Model) renderTabBar() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		label := string(rune('1'+int(t))) + " " + t.Label()
		if t == m.active {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	left := strings.Join(tabs, " ")

	right := styles.DimStyle.Render("standard")
	if m.privileged {
		right = styles.AccentStyle.Render("premium · offline friends")
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.current().loading:
		left = m.spinner.View() + " " + styles.DimStyle.Render("Loading "+m.active.String()+"...")
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	}

	right := m.help.ShortHelpView(m.keys.ShortHelp())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough room for both
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("Press any key to return..."))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}
