package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/screen"
	"github.com/mmcdole/purse/internal/tui/components"
	"github.com/mmcdole/purse/internal/tui/styles"
)

// Tab identifies one list screen
type Tab int

const (
	TabFriends Tab = iota
	TabSent
	TabReceived
	TabCards
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabFriends:
		return "friends"
	case TabSent:
		return "sent transfers"
	case TabReceived:
		return "received transfers"
	case TabCards:
		return "cards"
	default:
		return "unknown"
	}
}

// Label is the tab bar caption
func (t Tab) Label() string {
	switch t {
	case TabFriends:
		return "Friends"
	case TabSent:
		return "Sent"
	case TabReceived:
		return "Received"
	case TabCards:
		return "Cards"
	default:
		return "?"
	}
}

// Layout proportions
const (
	ListColumnPercent = 55

	// Tab bar and footer take one line each
	ChromeHeight = 2
)

// tabState is the per-screen UI state
type tabState struct {
	svc     domain.ItemService
	column  *components.ListColumn
	loaded  bool
	loading bool

	// seq is bumped on every load; only the latest result is applied
	seq int
}

// Options configures the model
type Options struct {
	// Privileged is shown in the tab bar; the screens are already composed for it
	Privileged bool
	Theme      string
	Logger     *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	tabs   []*tabState
	active Tab

	selection *Selection
	Inspector components.Inspector

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	ShowInspector bool
	ShowHelp      bool

	privileged bool
	logger     *slog.Logger
}

// NewModel creates a model over the composed screens. Selection must be the
// one whose Selectors were used to compose them.
func NewModel(screens screen.Screens, selection *Selection, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if selection == nil {
		selection = NewSelection()
	}
	styles.SetTheme(opts.Theme)

	services := map[Tab]domain.ItemService{
		TabFriends:  screens.Friends,
		TabSent:     screens.Sent,
		TabReceived: screens.Received,
		TabCards:    screens.Cards,
	}

	tabs := make([]*tabState, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		tabs[t] = &tabState{
			svc:    services[t],
			column: components.NewListColumn(t.Label()),
		}
	}

	return Model{
		tabs:          tabs,
		active:        TabFriends,
		selection:     selection,
		Inspector:     components.NewInspector(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		ShowInspector: true,
		privileged:    opts.Privileged,
		logger:        logger,
	}
}

func (m Model) Init() tea.Cmd {
	return m.startLoad(m.active)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		for _, tab := range m.tabs {
			tab.column.SetSpinnerView(m.spinner.View())
		}
		return m, cmd

	case ItemsLoadedMsg:
		tab := m.tabs[msg.Tab]
		if msg.Seq != tab.seq {
			m.logger.Debug("dropping superseded result", "tab", msg.Tab.String(), "seq", msg.Seq)
			return m, nil
		}
		tab.loading = false
		tab.loaded = true
		tab.column.SetItems(msg.Items)
		m.StatusMsg = fmt.Sprintf("Loaded %d %s", len(msg.Items), msg.Tab.String())
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		tab := m.tabs[msg.Tab]
		if msg.Seq != tab.seq {
			m.logger.Debug("dropping superseded failure", "tab", msg.Tab.String(), "seq", msg.Seq)
			return m, nil
		}
		// Keep whatever the tab showed before
		tab.loading = false
		tab.column.SetLoading(false)
		m.logger.Error("load failed", "tab", msg.Tab.String(), "error", msg.Err)
		m.StatusMsg = fmt.Sprintf("Couldn't load %s. Press r to try again.", msg.Tab.String())
		m.StatusIsErr = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	col := m.current().column

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// Filter input swallows everything while typing
	if col.IsFilterTyping() {
		_, cmd := col.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.active + 1) % tabCount)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.active + tabCount - 1) % tabCount)

	case key.Matches(msg, m.keys.Friends):
		return m.switchTab(TabFriends)
	case key.Matches(msg, m.keys.Sent):
		return m.switchTab(TabSent)
	case key.Matches(msg, m.keys.Received):
		return m.switchTab(TabReceived)
	case key.Matches(msg, m.keys.Cards):
		return m.switchTab(TabCards)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.startLoad(m.active)

	case key.Matches(msg, m.keys.Select):
		m.selectCurrent()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		col.ToggleFilter()
		return m, nil

	case key.Matches(msg, m.keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil
	}

	_, cmd := col.Update(msg)
	return m, cmd
}

// switchTab activates t and loads it on first visit
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.active = t
	m.updateLayout()

	tab := m.current()
	if tab.loaded || tab.loading {
		return m, nil
	}
	return m, m.startLoad(t)
}

// startLoad issues a load for t, superseding any load still in flight
func (m *Model) startLoad(t Tab) tea.Cmd {
	tab := m.tabs[t]
	if tab.svc == nil {
		return nil
	}

	wasIdle := !m.anyLoading()

	tab.seq++
	tab.loading = true
	tab.column.SetLoading(true)
	tab.column.SetSpinnerView(m.spinner.View())
	m.logger.Debug("loading tab", "tab", t.String(), "seq", tab.seq)

	load := LoadItemsCmd(t, tab.seq, tab.svc)
	if wasIdle {
		return tea.Batch(load, m.spinner.Tick)
	}
	return load
}

// selectCurrent reports the item under the cursor through its own selection
// callback and shows the record it handed back.
func (m *Model) selectCurrent() {
	item, ok := m.current().column.SelectedItem()
	if !ok {
		return
	}
	item.Select()
	if rec, ok := m.selection.Take(); ok {
		m.Inspector.SetRecord(rec)
		m.ShowInspector = true
		m.updateLayout()
	}
}

func (m Model) current() *tabState {
	return m.tabs[m.active]
}

// Active returns the visible tab
func (m Model) Active() Tab {
	return m.active
}

// Items returns what tab t currently lists
func (m Model) Items(t Tab) []domain.Item {
	return m.tabs[t].column.Items()
}

// Loading reports whether tab t has a load in flight
func (m Model) Loading(t Tab) bool {
	return m.tabs[t].loading
}

func (m Model) anyLoading() bool {
	for _, tab := range m.tabs {
		if tab.loading {
			return true
		}
	}
	return false
}

func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	bodyHeight := max(m.Height-ChromeHeight, 3)
	listWidth := m.Width
	if m.ShowInspector {
		listWidth = m.Width * ListColumnPercent / 100
		m.Inspector.SetSize(m.Width-listWidth, bodyHeight)
	}

	for t, tab := range m.tabs {
		tab.column.SetSize(listWidth, bodyHeight)
		tab.column.SetFocused(Tab(t) == m.active)
	}
}
