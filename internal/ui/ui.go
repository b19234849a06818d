package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/modelinv/internal/models"
	"github.com/desertthunder/modelinv/internal/repositories"
	"github.com/desertthunder/modelinv/internal/shared"
)

// Tab selects which store the browser shows.
type Tab int

const (
	ModelsTab Tab = iota
	ArtistsTab
	SourcesTab
	tabCount
)

func (t Tab) String() string {
	switch t {
	case ModelsTab:
		return "Models"
	case ArtistsTab:
		return "Artists"
	case SourcesTab:
		return "Sources"
	default:
		return "Unknown"
	}
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	SearchView
	ConfirmDeleteView
)

// modelSearchFields are the choices offered on the models tab. Artist and source are searched by exact name.
var modelSearchFields = []string{
	string(models.FieldName),
	string(models.FieldSetName),
	string(models.FieldSourceNote),
	string(models.RefArtist),
	string(models.RefSource),
}

// query is the search behind a tab's rows. The zero value lists everything.
type query struct {
	field string
	text  string
}

func (q query) String() string {
	if q.field != "" && q.text != "" {
		return fmt.Sprintf("%s:%s", q.field, q.text)
	}
	return q.text
}

// Model represents the TUI application state.
type Model struct {
	inv     *repositories.Inventory
	logger  shared.Logger
	open    func(string) error
	view    ViewState
	tab     Tab
	lists   [tabCount]list.Model
	queries [tabCount]query
	input   textinput.Model
	field   int
	pending list.Item
	status  string
	failed  bool
	err     error
	width   int
	height  int
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over the given inventory.
func NewModel(inv *repositories.Inventory, logger shared.Logger) *Model {
	if logger == nil {
		logger = shared.NopLogger()
	}

	input := textinput.New()
	input.Placeholder = "search text"
	input.CharLimit = 128

	m := &Model{
		inv:    inv,
		logger: logger,
		open:   shared.OpenBrowser,
		view:   BrowseView,
		tab:    ModelsTab,
		input:  input,
		help:   help.New(),
		keys:   newKeyMap(),
	}
	for t := Tab(0); t < tabCount; t++ {
		l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
		l.Title = t.String()
		l.SetShowHelp(false)
		m.lists[t] = l
	}
	return m
}

// Init loads every tab.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(ModelsTab, query{}), m.load(ArtistsTab, query{}), m.load(SourcesTab, query{}))
}

// Err returns the error that stopped the browser, if any.
func (m *Model) Err() error { return m.err }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for t := range m.lists {
			m.lists[t].SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.lists[m.tab], cmd = m.lists[m.tab].Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRowsLoaded:
		data := msg.data.(rowsLoaded)
		if data.err != nil {
			return m.fail(data.err)
		}
		m.queries[data.tab] = data.query
		title := data.tab.String()
		if data.query.text != "" {
			title = fmt.Sprintf("%s matching %s", title, data.query)
		}
		m.lists[data.tab].Title = title
		return m, m.lists[data.tab].SetItems(data.items)

	case MsgDeleted:
		data := msg.data.(deleted)
		if data.err != nil {
			return m.fail(data.err)
		}
		m.setStatus(fmt.Sprintf("deleted %s", data.label), false)
		return m, m.load(data.tab, m.queries[data.tab])

	case MsgOpened:
		data := msg.data.(opened)
		if data.err != nil {
			m.setStatus(data.err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("opened %s", data.url), false)
		}
	}
	return m, nil
}

// fail quits on store errors the session cannot recover from and reports everything else in the status line.
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	if shared.IsFatal(err) {
		m.logger.Error("store failure", "error", err)
		m.err = err
		return m, tea.Quit
	}

	var ref *shared.ReferencedError
	switch {
	case errors.As(err, &ref):
		m.setStatus(fmt.Sprintf("cannot delete: %s is used by %d model(s)", ref.Kind, ref.Count), true)
	default:
		m.setStatus(err.Error(), true)
	}
	m.logger.Warn("store refused request", "error", err)
	return m, nil
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := &m.lists[m.tab]
	if current.FilterState() == list.Filtering {
		var cmd tea.Cmd
		*current, cmd = current.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.field = 0
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.clear), key.Matches(msg, m.keys.reload):
		q := m.queries[m.tab]
		if key.Matches(msg, m.keys.clear) {
			q = query{}
		}
		return m, m.load(m.tab, q)
	case key.Matches(msg, m.keys.delete):
		if _, _, ok := itemID(current.SelectedItem()); !ok {
			m.setStatus("nothing to delete", true)
			return m, nil
		}
		m.pending = current.SelectedItem()
		m.view = ConfirmDeleteView
		return m, nil
	case key.Matches(msg, m.keys.open):
		return m, m.openWebsite(current.SelectedItem())
	}

	var cmd tea.Cmd
	*current, cmd = current.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.view = BrowseView
		m.input.Blur()
		return m, m.load(m.tab, query{field: m.searchField(), text: m.input.Value()})
	case m.tab == ModelsTab && key.Matches(msg, m.keys.field):
		m.field = (m.field + 1) % len(modelSearchFields)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		item := m.pending
		m.pending = nil
		m.view = BrowseView
		return m, m.remove(m.tab, item)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.pending = nil
		m.view = BrowseView
	}
	return m, nil
}

func (m *Model) searchField() string {
	if m.tab != ModelsTab {
		return ""
	}
	return modelSearchFields[m.field]
}

func (m *Model) load(tab Tab, q query) tea.Cmd {
	return func() tea.Msg {
		items, err := m.fetch(tab, q)
		return rowsLoadedMsg(tab, q, items, err)
	}
}

// fetch reads one tab from the store. An empty text lists everything.
func (m *Model) fetch(tab Tab, q query) ([]list.Item, error) {
	text := q.text
	switch tab {
	case ModelsTab:
		rows, err := m.fetchModels(q.field, text)
		if err != nil {
			return nil, err
		}
		return toItems(rows, func(v models.Model) list.Item { return modelItem{model: v} }, text), nil
	case ArtistsTab:
		var (
			rows []models.Artist
			err  error
		)
		if text == "" {
			rows, err = m.inv.Artists.All()
		} else {
			rows, err = m.inv.Artists.Search(text)
		}
		if err != nil {
			return nil, err
		}
		return toItems(rows, func(v models.Artist) list.Item { return artistItem{artist: v} }, text), nil
	case SourcesTab:
		var (
			rows []models.Source
			err  error
		)
		if text == "" {
			rows, err = m.inv.Sources.All()
		} else {
			rows, err = m.inv.Sources.Search(text)
		}
		if err != nil {
			return nil, err
		}
		return toItems(rows, func(v models.Source) list.Item { return sourceItem{source: v} }, text), nil
	default:
		return nil, fmt.Errorf("%w: tab %d", shared.ErrInvalidArgument, tab)
	}
}

func (m *Model) fetchModels(field, text string) ([]models.Model, error) {
	if text == "" {
		return m.inv.Models.All()
	}
	return m.inv.SearchModels(field, text)
}

func (m *Model) remove(tab Tab, item list.Item) tea.Cmd {
	return func() tea.Msg {
		id, label, ok := itemID(item)
		if !ok {
			return deletedMsg(tab, "", fmt.Errorf("%w: nothing selected", shared.ErrInvalidArgument))
		}

		var err error
		switch item.(type) {
		case modelItem:
			err = m.inv.Models.Delete(id)
		case artistItem:
			err = m.inv.Artists.Delete(id)
		case sourceItem:
			err = m.inv.Sources.Delete(id)
		}
		return deletedMsg(tab, label, err)
	}
}

func (m *Model) openWebsite(item list.Item) tea.Cmd {
	var site string
	switch it := item.(type) {
	case artistItem:
		site = it.artist.Website
	case sourceItem:
		site = it.source.Website
	}

	return func() tea.Msg {
		url, err := shared.WebsiteURL(site)
		if err != nil {
			return openedMsg("", err)
		}
		return openedMsg(url, m.open(url))
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.view {
	case SearchView:
		b.WriteString(m.renderSearch())
	case ConfirmDeleteView:
		b.WriteString(m.renderConfirm())
	default:
		b.WriteString(m.lists[m.tab].View())
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, styles.activeTab.Render(t.String()))
		} else {
			tabs = append(tabs, styles.tab.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render(fmt.Sprintf("Search %s", m.tab))
	field := ""
	if m.tab == ModelsTab {
		field = fmt.Sprintf("Field: %s\n", styles.ok.Render(m.searchField()))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	if m.tab == ModelsTab {
		helpKeys = append(helpKeys, m.keys.field)
	}
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, field, m.input.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	_, label, _ := itemID(m.pending)
	title := styles.warn.Render(fmt.Sprintf("Delete %s?", label))
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n\n%s", title, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return styles.err.Render(m.status)
	}
	return styles.ok.Render(m.status)
}
