package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/itemservice"
	"github.com/mmcdole/purse/internal/tui/styles"
)

const inspectorDateLayout = "Mon Jan 2, 2006 15:04 MST"

// Inspector displays the record most recently chosen from a list
type Inspector struct {
	record domain.Record
	width  int
	height int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetRecord sets the record to display
func (i *Inspector) SetRecord(rec domain.Record) {
	i.record = rec
}

// Record returns the displayed record, or nil
func (i Inspector) Record() domain.Record {
	return i.record
}

func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars, leave 1 char safety margin
	contentWidth := max(i.width-3, 10)

	parts := []string{
		styles.AccentStyle.Render(styles.Truncate("Details", contentWidth)),
		"",
		i.renderBody(contentWidth),
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func (i Inspector) renderBody(width int) string {
	switch r := i.record.(type) {
	case domain.Friend:
		return renderFields(width, r.Name,
			field{"Phone", r.Phone},
			field{"ID", r.ID},
		)
	case domain.Card:
		return renderFields(width, r.Number,
			field{"Holder", r.Holder},
			field{"ID", r.ID},
		)
	case domain.Transfer:
		direction := styles.SuccessStyle.Render("received")
		if r.IsSender {
			direction = styles.WarnStyle.Render("sent")
		}
		return renderFields(width, r.Description,
			field{"Amount", itemservice.FormatAmount(r)},
			field{"Direction", direction},
			field{"From", r.Sender},
			field{"To", r.Recipient},
			field{"Date", r.Date.Format(inspectorDateLayout)},
			field{"ID", r.ID},
		)
	default:
		return styles.DimStyle.Render("Press enter on an item to see its details")
	}
}

type field struct {
	label string
	value string
}

func renderFields(width int, heading string, fields ...field) string {
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.label))
	}

	lines := []string{styles.TitleStyle.Render(styles.Truncate(heading, width)), ""}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		label := styles.DimStyle.Render(f.label + strings.Repeat(" ", labelWidth-lipgloss.Width(f.label)))
		lines = append(lines, label+"  "+styles.SubtitleStyle.Render(f.value))
	}
	return strings.Join(lines, "\n")
}
