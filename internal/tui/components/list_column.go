package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Each item renders a title line and a detail line
	linesPerItem = 2
)

// itemSource adapts items to fuzzy.Source
type itemSource []domain.Item

func (s itemSource) String(i int) string { return strings.ToLower(s[i].TitleText) }
func (s itemSource) Len() int            { return len(s) }

// ListColumn is a scrollable, filterable list of items.
type ListColumn struct {
	items []domain.Item

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	loading     bool
	spinnerView string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewListColumn creates an empty list column
func NewListColumn(title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		title:       title,
		filterInput: ti,
		focused:     true,
	}
}

// Update handles navigation and filter keys
func (c *ListColumn) Update(msg tea.Msg) (*ListColumn, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "enter":
				// Accept filter, keep results for navigation
				c.filterInput.Blur()
				return c, nil
			case "backspace":
				if c.filterInput.Value() == "" {
					c.clearFilter()
					return c, nil
				}
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Filter applied, navigating results
	if c.filterActive {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				c.clearFilter()
				return c, nil
			case "/":
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "down":
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case "k", "up":
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case "g", "home":
			c.cursor = 0
			c.offset = 0
		case "G", "end":
			c.cursor = count - 1
			c.ensureVisible()
		case "ctrl+d", "pgdown":
			c.cursor += max(c.maxVisible/2, 1)
			if c.cursor >= count {
				c.cursor = count - 1
			}
			c.ensureVisible()
		case "ctrl+u", "pgup":
			c.cursor -= max(c.maxVisible/2, 1)
			if c.cursor < 0 {
				c.cursor = 0
			}
			c.ensureVisible()
		}
	}

	return c, nil
}

func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

func (c *ListColumn) Title() string {
	return c.title
}

// SetItems replaces the whole list and resets cursor and filter
func (c *ListColumn) SetItems(items []domain.Item) {
	c.loading = false
	c.items = items
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// Items returns the unfiltered items
func (c *ListColumn) Items() []domain.Item {
	return c.items
}

// VisibleItems returns the items after filtering, in display order
func (c *ListColumn) VisibleItems() []domain.Item {
	if c.filteredIdx == nil {
		return c.items
	}
	out := make([]domain.Item, len(c.filteredIdx))
	for i, idx := range c.filteredIdx {
		out[i] = c.items[idx]
	}
	return out
}

// SelectedItem returns the item under the cursor
func (c *ListColumn) SelectedItem() (domain.Item, bool) {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return domain.Item{}, false
	}
	return c.items[c.mapIndex(c.cursor)], true
}

func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

func (c *ListColumn) SetSelectedIndex(idx int) {
	last := c.ItemCount() - 1
	if last < 0 {
		c.cursor = 0
		return
	}
	c.cursor = min(max(idx, 0), last)
	c.ensureVisible()
}

func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

func (c *ListColumn) SetLoading(loading bool) {
	c.loading = loading
}

func (c *ListColumn) IsLoading() bool {
	return c.loading
}

// SetSpinnerView sets the rendered spinner shown while loading
func (c *ListColumn) SetSpinnerView(view string) {
	c.spinnerView = view
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active and input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

// SetFilter applies query as if it had been typed
func (c *ListColumn) SetFilter(query string) {
	c.filterActive = true
	c.filterInput.SetValue(query)
	c.applyFilter()
	c.recalcMaxVisible()
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior minus title line and scroll indicators
	interiorHeight := c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		interiorHeight--
	}
	c.maxVisible = interiorHeight / linesPerItem
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), itemSource(c.items))

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading && len(c.items) == 0 {
		return titleLine + "\n \n" + c.spinnerView + styles.DimStyle.Render(" Loading...")
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No items")
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)

	var lines []string
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderItem(c.items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *ListColumn) renderItem(item domain.Item, selected bool, width int) string {
	dim := styles.DimGray
	if selected {
		dim = styles.LightGray
	}

	title := styles.Truncate(item.TitleText, width-2)
	detail := styles.Truncate(item.DetailText, width-2)

	return styles.RenderListRow([]styles.RowPart{{Text: title}}, selected, width) + "\n" +
		styles.RenderListRow([]styles.RowPart{{Text: detail, Foreground: &dim}}, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	input := c.filterInput.View()
	if c.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
}
