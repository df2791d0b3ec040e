package tui

import (
	"errors"
	"math"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/stefanpenner/brandpilot/pkg/catalog"
	"github.com/stefanpenner/brandpilot/pkg/program"
	"github.com/stefanpenner/brandpilot/pkg/reward"
	"go.uber.org/zap"
)

const (
	statusDuration        = 3 * time.Second
	defaultRewardDebounce = 500 * time.Millisecond
)

// RewardMsg carries a debounced reward estimate back to the form.
type RewardMsg reward.Result

// clearStatusMsg triggers a redraw once the status message has expired.
type clearStatusMsg struct{}

// Model is the Bubble Tea model for the program board.
type Model struct {
	store       *program.Store
	catalog     *catalog.Catalog
	catalogPath string
	logger      *zap.Logger
	now         func() time.Time
	keys        KeyMap
	width       int
	height      int

	// Derived from the store on every refresh
	visible     []program.Program
	columns     []Column
	brandCounts []program.BrandCount
	total       int
	reported    map[string]bool // dropped program ids already logged

	col  int
	rows []int // selected card per column

	brandFilter string
	isSearching bool
	searchQuery string
	showChart   bool

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteTarget      program.Program
	showDetail        bool
	detailTarget      program.Program

	form *programForm

	rewardDelay time.Duration
	rewards     chan reward.Result
	debouncer   *reward.Debouncer

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithClock sets the time source used for time-gone progress.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithCatalogPath sets the file reloaded on R or when the watcher fires.
func WithCatalogPath(path string) Option {
	return func(m *Model) {
		m.catalogPath = path
	}
}

// WithRewardDebounce sets how long the form waits after the last edit before
// estimating the reward.
func WithRewardDebounce(d time.Duration) Option {
	return func(m *Model) {
		m.rewardDelay = d
	}
}

// NewModel creates a board over s using the reference lists in c.
func NewModel(s *program.Store, c *catalog.Catalog, opts ...Option) Model {
	m := Model{
		store:       s,
		catalog:     c,
		logger:      zap.NewNop(),
		now:         time.Now,
		keys:        DefaultKeyMap(),
		reported:    make(map[string]bool),
		rows:        make([]int, len(program.Statuses)),
		brandFilter: program.AllBrands,
		rewardDelay: defaultRewardDebounce,
		rewards:     make(chan reward.Result, 1),
	}
	for _, opt := range opts {
		opt(&m)
	}

	rewards := m.rewards
	m.debouncer = reward.NewDebouncer(m.rewardDelay, func(r reward.Result) {
		// Only the newest estimate matters; replace anything unread.
		select {
		case <-rewards:
		default:
		}
		select {
		case rewards <- r:
		default:
		}
	})

	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), waitForReward(m.rewards))
}

// Close cancels any pending reward estimate.
func (m Model) Close() {
	m.debouncer.Stop()
}

func waitForReward(ch <-chan reward.Result) tea.Cmd {
	return func() tea.Msg {
		return RewardMsg(<-ch)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.getGlamourRenderer(detailWidth(msg.Width))
		return m, tea.ClearScreen

	case RewardMsg:
		return m.handleReward(reward.Result(msg))

	case CatalogChangedMsg:
		return m, m.reloadCatalog()

	case clearStatusMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	// Help modal
	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	// Delete confirmation
	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y":
			m.showDeleteConfirm = false
			if err := m.store.Delete(m.deleteTarget.ID); err != nil {
				return m, m.setStatus("Delete failed: " + err.Error())
			}
			m.refresh()
			return m, m.setStatus("Program deleted")
		case "n", "N", "esc":
			m.showDeleteConfirm = false
		}
		return m, nil
	}

	if m.showDetail {
		switch msg.String() {
		case "esc", "enter", "q":
			m.showDetail = false
		}
		return m, nil
	}

	// An applied search is cleared with Esc
	if m.searchQuery != "" && msg.Type == tea.KeyEsc {
		m.searchQuery = ""
		m.refresh()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debouncer.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.rows[m.col] < len(m.columns[m.col].Cards)-1 {
			m.rows[m.col]++
		}

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.Detail):
		if p, ok := m.selected(); ok {
			m.showDetail = true
			m.detailTarget = p
		}

	case key.Matches(msg, m.keys.Add):
		return m, m.openForm(nil)

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.selected(); ok {
			return m, m.openForm(&p)
		}

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selected(); ok {
			m.deleteTarget = p
			m.showDeleteConfirm = true
		}

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true

	case key.Matches(msg, m.keys.NextBrand):
		m.cycleBrand(1)

	case key.Matches(msg, m.keys.PrevBrand):
		m.cycleBrand(-1)

	case key.Matches(msg, m.keys.Chart):
		m.showChart = !m.showChart

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCatalog()

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = !m.showHelpModal
	}

	return m, nil
}

// handleSearchInput handles key messages while typing in the search bar.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.searchQuery = ""
		m.refresh()

	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		// Stop typing but keep the filter
		m.isSearching = false

	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
			m.refresh()
		}

	case tea.KeySpace:
		m.searchQuery += " "
		m.refresh()

	case tea.KeyRunes:
		m.searchQuery += string(msg.Runes)
		m.refresh()
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, rewardChanged, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.form = nil
		return m, nil
	case formSubmit:
		return m, m.submitForm()
	}

	if rewardChanged {
		m.form.calculating = true
		m.debouncer.Submit(m.form.rewardInputs())
	}
	return m, cmd
}

func (m *Model) openForm(p *program.Program) tea.Cmd {
	m.form = newProgramForm(m.catalog, p)
	achievement, percent := m.form.rewardInputs()
	m.form.estimated, _ = reward.Calculate(achievement, percent)
	return nil
}

// submitForm saves the form. Problems are shown in the form, which stays open.
func (m *Model) submitForm() tea.Cmd {
	p, err := m.form.program()
	if err != nil {
		m.form.err = err.Error()
		return nil
	}

	var saved program.Program
	var status string
	if m.form.editingID == "" {
		saved, err = m.store.Create(p)
		status = "Program created"
	} else {
		saved, err = m.store.Update(m.form.editingID, p)
		status = "Program updated"
	}

	if errors.Is(err, program.ErrNotFound) {
		m.form = nil
		m.refresh()
		return m.setStatus("Program no longer exists")
	}
	if err != nil {
		m.form.err = err.Error()
		return nil
	}

	m.form = nil
	m.refresh()
	m.selectProgram(saved.ID)
	return m.setStatus(status)
}

func (m Model) handleReward(r reward.Result) (tea.Model, tea.Cmd) {
	next := waitForReward(m.rewards)
	if m.form == nil {
		return m, next
	}

	// A result for inputs the form no longer holds is stale
	achievement, percent := m.form.rewardInputs()
	if !sameInput(achievement, r.Achievement) || !sameInput(percent, r.Percent) {
		return m, next
	}

	m.form.calculating = false
	if r.Err != nil {
		m.logger.Error("reward calculation failed",
			zap.Float64("achievement", r.Achievement),
			zap.Float64("percent", r.Percent),
			zap.Error(r.Err))
		m.form.estimated = 0
		return m, tea.Batch(next, m.setStatus("Could not calculate the estimated reward"))
	}
	m.form.estimated = r.Estimated
	return m, next
}

func sameInput(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// refresh recomputes the board from the store, the brand filter and the
// search query, keeping the selection in range.
func (m *Model) refresh() {
	all := m.store.List()
	m.total = len(all)
	m.visible = program.Filter(all, m.brandFilter, m.searchQuery)

	columns, dropped := BuildColumns(m.visible, m.now())
	m.reportDropped(dropped)
	m.columns = columns
	m.brandCounts = program.GroupByBrand(m.visible)

	for i, col := range m.columns {
		if m.rows[i] >= len(col.Cards) {
			m.rows[i] = len(col.Cards) - 1
		}
		if m.rows[i] < 0 {
			m.rows[i] = 0
		}
	}
}

// reportDropped logs each program left off the board, once per id.
func (m *Model) reportDropped(dropped []program.Program) {
	for _, p := range dropped {
		if m.reported[p.ID] {
			continue
		}
		m.reported[p.ID] = true
		m.logger.Warn("program with unknown status left off the board",
			zap.String("id", p.ID),
			zap.String("status", string(p.Status)))
	}
}

func (m Model) selected() (program.Program, bool) {
	if m.col >= len(m.columns) {
		return program.Program{}, false
	}
	cards := m.columns[m.col].Cards
	row := m.rows[m.col]
	if row >= len(cards) {
		return program.Program{}, false
	}
	return cards[row].Program, true
}

func (m *Model) selectProgram(id string) {
	for c, col := range m.columns {
		for r, card := range col.Cards {
			if card.Program.ID == id {
				m.col = c
				m.rows[c] = r
				return
			}
		}
	}
}

func (m *Model) cycleBrand(delta int) {
	options := brandOptions(m.catalog.Brands)
	idx := 0
	for i, b := range options {
		if b == m.brandFilter {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(options)) % len(options)
	m.brandFilter = options[idx]
	m.refresh()
}

// reloadCatalog re-reads the reference lists. Programs already on the board
// are left alone.
func (m *Model) reloadCatalog() tea.Cmd {
	if m.catalogPath == "" {
		return nil
	}
	c, err := catalog.Load(m.catalogPath)
	if err != nil {
		m.logger.Error("catalog reload failed", zap.String("path", m.catalogPath), zap.Error(err))
		return m.setStatus("Catalog reload failed: " + err.Error())
	}
	m.catalog = c
	m.logger.Info("catalog reloaded",
		zap.String("path", m.catalogPath),
		zap.Int("brands", len(c.Brands)),
		zap.Int("program_types", len(c.ProgramTypes)))

	if m.brandFilter != program.AllBrands && !c.HasBrand(m.brandFilter) {
		m.brandFilter = program.AllBrands
		m.refresh()
	}
	return m.setStatus("Catalog reloaded")
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
