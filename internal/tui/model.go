package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/automat-io/automat/internal/assistant"
	"github.com/automat-io/automat/internal/batch"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

// Left panel tabs.
const (
	tabDashboard = iota
	tabApps
	tabAssistant
	tabSettings
)

// Right panel tabs.
const (
	tabFeed = iota
	tabRuns
)

// Options configure a new Model.
type Options struct {
	Jobs      []models.Job
	Settings  models.Settings
	Assistant *assistant.Service
	Configs   ConfigSource
	Logger    *slog.Logger
	Program   *programRef

	// Now and Rules default to time.Now and the rules derived from Settings.
	Now   func() time.Time
	Rules *batch.Rules
}

// Model is the root Bubbletea model for the TUI.
type Model struct {
	// Batch run
	state     batch.State
	rules     batch.Rules
	interval  time.Duration
	run       int // Generation of the current run; stale ticks are dropped
	startedAt time.Time
	started   bool // A run was started during this session
	now       func() time.Time

	// Collaborators
	assistant *assistant.Service
	configs   ConfigSource
	logger    *slog.Logger

	// Assistant insights keyed by job ID
	insights  map[string]string
	analyzing string

	// UI state
	leftTab       int     // tabDashboard, tabApps, tabAssistant, tabSettings
	rightTab      int     // tabFeed, tabRuns
	focusedPanel  int     // 0=left, 1=right
	showHelp      bool
	splitRatio    float64 // Default 0.6
	width         int
	height        int

	confirmMode int

	// Status display
	err       error
	showSaved bool

	// Child components
	appList      *AppList
	feed         *FeedView
	runsView     *RunsView
	settingsForm *SettingsForm
	scriptForm   *ScriptForm

	// Program reference for goroutine Send()
	program *programRef

	// Dragging state
	dragging bool
}

// NewModel creates the initial TUI model.
func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rules := batch.RulesFromSettings(opts.Settings.Simulation)
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	interval := opts.Settings.Simulation.TickInterval
	if interval <= 0 {
		interval = batch.DefaultInterval
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	program := opts.Program
	if program == nil {
		program = &programRef{}
	}

	m := Model{
		state:        batch.New(opts.Jobs, now()),
		rules:        rules,
		interval:     interval,
		now:          now,
		assistant:    opts.Assistant,
		configs:      opts.Configs,
		logger:       log,
		insights:     make(map[string]string),
		splitRatio:   0.6,
		appList:      NewAppList(),
		feed:         NewFeedView(),
		runsView:     NewRunsView(),
		settingsForm: NewSettingsForm(),
		scriptForm:   NewScriptForm(),
		program:      program,
	}
	m.sync()
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	if m.configs == nil {
		return nil
	}
	return loadConfigCmd(m.configs)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	// ── Mouse events ───────────────────────────────────────────────
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	// ── Batch run ──────────────────────────────────────────────────
	case tickMsg:
		if msg.run != m.run || m.state.Phase != batch.PhaseRunning {
			return m, nil
		}
		m.state = batch.Tick(m.state, m.rules, m.now())
		m.appList.Tick()
		m.sync()
		if m.state.Phase == batch.PhaseRunning {
			return m, tickCmd(m.interval, m.run)
		}
		c := m.state.Counts()
		m.logger.Info("batch finished", "succeeded", c.Succeeded, "failed", c.Failed)
		return m, nil

	// ── Assistant ──────────────────────────────────────────────────
	case ScriptGeneratedMsg:
		if msg.Err != nil {
			m.scriptForm.SetGenerating(false)
			m.logger.Error("script generation failed", "error", msg.Err)
			m.err = generationError(msg.Err)
			return m, clearErrorAfter(5 * time.Second)
		}
		m.scriptForm.SetScript(msg.Script)
		return m, nil

	case AnalysisMsg:
		if m.analyzing == msg.JobID {
			m.analyzing = ""
		}
		m.insights[msg.JobID] = msg.Analysis
		return m, nil

	// ── Settings ───────────────────────────────────────────────────
	case ConfigLoadedMsg:
		m.settingsForm.Load(msg.Config)
		return m, nil

	case ConfigSavedMsg:
		m.settingsForm.Load(msg.Config)
		m.showSaved = true
		return m, clearSavedAfter(3 * time.Second)

	// ── Saved runs ─────────────────────────────────────────────────
	case RunsLoadedMsg:
		m.runsView.SetRuns(msg.Runs)
		return m, nil

	case RunContentMsg:
		m.runsView.Open(msg.Run, msg.Content)
		return m, nil

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		if m.analyzing != "" {
			delete(m.insights, m.analyzing)
			m.analyzing = ""
		}
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil
	}

	return m, nil
}

// generationError turns a generation failure into the message shown to
// the operator.
func generationError(err error) error {
	if errors.Is(err, assistant.ErrEmptyDescription) {
		return errors.New("describe the detection logic first")
	}
	return errors.New(assistant.MsgGenerateFailed)
}

// sync pushes the batch state into the child views.
func (m *Model) sync() {
	m.appList.SetJobs(m.state.Jobs)
	m.feed.SetEntries(m.state.Logs)
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Confirm mode captures everything
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	// Overlay captures everything
	if m.showHelp {
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.showHelp = false
		}
		return nil
	}

	// Text inputs capture everything except quit
	if m.focusedPanel == 0 {
		switch {
		case m.leftTab == tabAssistant && m.scriptForm.IsEditing():
			if msg.Type == tea.KeyCtrlQ {
				return m.requestQuit()
			}
			return m.handleScriptEditKey(msg)
		case m.leftTab == tabSettings && m.settingsForm.IsEditing():
			if msg.Type == tea.KeyCtrlQ {
				return m.requestQuit()
			}
			return m.handleSettingsEditKey(msg)
		}
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m.requestQuit()

	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return nil

	case key.Matches(msg, globalKeys.Tab):
		m.focusedPanel = 1 - m.focusedPanel
		return nil

	case key.Matches(msg, tabSwitchKeys.Tab1):
		m.leftTab = tabDashboard
		m.focusedPanel = 0
		return nil
	case key.Matches(msg, tabSwitchKeys.Tab2):
		m.leftTab = tabApps
		m.focusedPanel = 0
		return nil
	case key.Matches(msg, tabSwitchKeys.Tab3):
		m.leftTab = tabAssistant
		m.focusedPanel = 0
		return nil
	case key.Matches(msg, tabSwitchKeys.Tab4):
		m.leftTab = tabSettings
		m.focusedPanel = 0
		return nil
	}

	if m.focusedPanel == 0 {
		return m.handleLeftPanelKey(msg)
	}
	return m.handleRightPanelKey(msg)
}

func (m *Model) handleLeftPanelKey(msg tea.KeyMsg) tea.Cmd {
	switch m.leftTab {
	case tabDashboard:
		return m.handleBatchKey(msg)
	case tabApps:
		return m.handleAppListKey(msg)
	case tabAssistant:
		return m.handleAssistantKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	}
	return nil
}

func (m *Model) handleRightPanelKey(msg tea.KeyMsg) tea.Cmd {
	switch m.rightTab {
	case tabFeed:
		switch msg.Type {
		case tea.KeyUp:
			m.feed.ScrollUp(1)
		case tea.KeyDown:
			m.feed.ScrollDown(1)
		case tea.KeyPgUp:
			m.feed.PageUp()
		case tea.KeyPgDown:
			m.feed.PageDown()
		case tea.KeyRight:
			m.rightTab = tabRuns
			return listRunsCmd()
		}
	case tabRuns:
		return m.handleRunsKey(msg)
	}
	return nil
}

func (m *Model) handleBatchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, batchKeys.Start):
		return m.startBatch()
	case key.Matches(msg, batchKeys.Stop):
		if m.state.Phase == batch.PhaseRunning {
			m.confirmMode = confirmStop
		}
	}
	return nil
}

func (m *Model) handleAppListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, appListKeys.Up):
		m.appList.MoveUp()
	case key.Matches(msg, appListKeys.Down):
		m.appList.MoveDown()
	case key.Matches(msg, appListKeys.Analyze):
		return m.analyzeSelected()
	default:
		return m.handleBatchKey(msg)
	}
	return nil
}

func (m *Model) handleAssistantKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, assistantKeys.Generate):
		return m.generateScript()
	case key.Matches(msg, assistantKeys.Quick):
		m.scriptForm.NextQuickPrompt()
	case key.Matches(msg, assistantKeys.Edit):
		m.scriptForm.Focus()
	case key.Matches(msg, assistantKeys.Up):
		m.scriptForm.ScrollUp()
	case key.Matches(msg, assistantKeys.Down):
		m.scriptForm.ScrollDown()
	}
	return nil
}

func (m *Model) handleScriptEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlS:
		m.scriptForm.Blur()
		return m.generateScript()
	case tea.KeyEsc:
		m.scriptForm.Blur()
		return nil
	}
	ta := m.scriptForm.PromptArea()
	newTA, cmd := ta.Update(msg)
	*ta = newTA
	return cmd
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, settingsKeys.Up):
		m.settingsForm.MoveUp()
	case key.Matches(msg, settingsKeys.Down):
		m.settingsForm.MoveDown()
	case key.Matches(msg, settingsKeys.Reveal):
		m.settingsForm.ToggleReveal()
	case key.Matches(msg, settingsKeys.Enter):
		m.settingsForm.StartEdit()
	}
	return nil
}

func (m *Model) handleSettingsEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		changed, cfg := m.settingsForm.FinishEdit()
		if changed && m.configs != nil {
			return saveConfigCmd(m.configs, cfg)
		}
		return nil
	case tea.KeyEscape:
		m.settingsForm.CancelEdit()
		return nil
	}
	ti := m.settingsForm.InputModel()
	newTI, cmd := ti.Update(msg)
	*ti = newTI
	return cmd
}

func (m *Model) handleRunsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.runsView.Move(-1)
	case "down", "j":
		m.runsView.Move(1)
	case "pgup":
		m.runsView.Page(false)
	case "pgdown":
		m.runsView.Page(true)
	case "left":
		if !m.runsView.Detail() {
			m.rightTab = tabFeed
		}
	case "enter":
		if run := m.runsView.Selected(); run != nil && !m.runsView.Detail() {
			return readRunCmd(run.RunID)
		}
	case "esc":
		m.runsView.Back()
	}
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode := m.confirmMode
		m.confirmMode = confirmNone
		switch mode {
		case confirmQuit:
			return m.doQuit()
		case confirmStop:
			m.stopBatch()
		}
	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
	}
	return nil
}

// ── Batch actions ────────────────────────────────────────────────

// startBatch moves every idle app to packaging and schedules the first tick.
func (m *Model) startBatch() tea.Cmd {
	if m.state.Phase == batch.PhaseRunning {
		return nil
	}
	now := m.now()
	m.state = batch.StartBatch(m.state, now)
	m.sync()
	if m.state.Phase != batch.PhaseRunning {
		return nil
	}
	m.run++
	if !m.started {
		m.started = true
		m.startedAt = now
	}
	m.logger.Info("batch started", "run", m.run, "interval", m.interval)
	return tickCmd(m.interval, m.run)
}

func (m *Model) stopBatch() {
	m.state = batch.Interrupt(m.state, m.now())
	m.sync()
	m.logger.Warn("batch interrupted", "run", m.run)
}

func (m *Model) analyzeSelected() tea.Cmd {
	job, ok := m.appList.Selected()
	if !ok || job.Status != models.JobStatusError || m.assistant == nil {
		return nil
	}
	if m.analyzing != "" {
		return nil
	}
	m.analyzing = job.ID
	m.insights[job.ID] = "Analyzing failure..."
	return analyzeJobCmd(m.assistant, job, m.state.Logs)
}

func (m *Model) generateScript() tea.Cmd {
	if m.scriptForm.Generating() || m.assistant == nil {
		return nil
	}
	desc := m.scriptForm.Description()
	if desc == "" {
		return nil
	}
	m.scriptForm.SetGenerating(true)
	return generateScriptCmd(m.assistant, desc)
}

func (m *Model) requestQuit() tea.Cmd {
	if m.state.Phase == batch.PhaseRunning {
		m.confirmMode = confirmQuit
		return nil
	}
	return m.doQuit()
}

// doQuit clears the program ref and quits. The transcript is saved by Run
// once the program has exited.
func (m *Model) doQuit() tea.Cmd {
	m.program.Clear()
	return tea.Quit
}

// saveTranscript interrupts a run that is still going and writes the
// session's log feed to ~/.automat/logs. Nothing is written when no batch
// was started.
func (m *Model) saveTranscript() {
	if !m.started {
		return
	}
	if m.state.Phase == batch.PhaseRunning {
		m.state = batch.Interrupt(m.state, m.now())
	}
	status := "completed"
	if n := len(m.state.Logs); n > 0 && m.state.Logs[n-1].Message == batch.MsgBatchStopped {
		status = "interrupted"
	}
	c := m.state.Counts()
	header, err := config.WriteRunLog(models.RunLog{
		RunID:     uuid.NewString()[:8],
		StartedAt: m.startedAt.UTC().Format(time.RFC3339),
		EndedAt:   m.now().UTC().Format(time.RFC3339),
		Succeeded: c.Succeeded,
		Failed:    c.Failed,
		Status:    status,
	}, m.state.Logs)
	if err != nil {
		m.logger.Error("failed to save transcript", "error", err)
		return
	}
	m.logger.Info("transcript saved", "run_id", header.RunID, "status", status)
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		l := newLayout(m.width, m.height, m.splitRatio)
		x := msg.X

		if l.onDivider(x) {
			m.dragging = true
			return nil
		}

		if x < l.divider() {
			m.focusedPanel = 0
		} else {
			m.focusedPanel = 1
		}

		if msg.Y == 0 {
			return m.handleHeaderClick(msg.X)
		}

	case tea.MouseActionRelease:
		m.dragging = false

	case tea.MouseActionMotion:
		if m.dragging && m.width > 0 {
			m.splitRatio = splitAt(msg.X, m.width)
			m.updateDimensions()
		}
	}

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.focusedPanel == 0 {
				m.appList.MoveUp()
			} else {
				m.feed.ScrollUp(3)
			}
		case tea.MouseButtonWheelDown:
			if m.focusedPanel == 0 {
				m.appList.MoveDown()
			} else {
				m.feed.ScrollDown(3)
			}
		}
	}

	return nil
}

func (m *Model) handleHeaderClick(x int) tea.Cmd {
	l := newLayout(m.width, m.height, m.splitRatio)
	if x < l.divider() {
		// Tabs start after " ● Automat  " and are roughly 12 cells apart
		tabIdx := (x - 12) / 12
		if tabIdx >= 0 && tabIdx < len(leftTabNames) {
			m.leftTab = tabIdx
			m.focusedPanel = 0
		}
		return nil
	}
	m.focusedPanel = 1
	if x-l.divider() < 15 {
		m.rightTab = tabFeed
		return nil
	}
	m.rightTab = tabRuns
	return listRunsCmd()
}

// ── Dimension helpers ────────────────────────────────────────────

func (m *Model) updateDimensions() {
	l := newLayout(m.width, m.height, m.splitRatio)
	innerHeight := l.innerHeight()
	leftInner := l.leftInner()
	rightInner := l.rightInner()

	m.appList.SetHeight(innerHeight)
	m.feed.SetSize(rightInner, innerHeight)
	m.runsView.SetSize(rightInner, innerHeight)
	m.settingsForm.SetSize(leftInner, innerHeight)
	m.scriptForm.SetSize(leftInner, innerHeight)
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	if m.width < 80 || m.height < 24 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 80x24, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	l := newLayout(m.width, m.height, m.splitRatio)

	header := renderHeader(m.state, m.leftTab, m.rightTab, m.width)
	panels := l.render(m.renderLeftPanel(l.leftInner()), m.renderRightPanel(), m.focusedPanel)
	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	if m.showHelp {
		view = withModal(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}

func (m Model) renderLeftPanel(width int) string {
	switch m.leftTab {
	case tabDashboard:
		return renderDashboard(m.state, width)
	case tabApps:
		insight := ""
		if job, ok := m.appList.Selected(); ok {
			insight = m.insights[job.ID]
		}
		return m.appList.View(width, insight)
	case tabAssistant:
		return m.scriptForm.View()
	case tabSettings:
		return m.settingsForm.View()
	}
	return ""
}

func (m Model) renderRightPanel() string {
	if m.rightTab == tabRuns {
		return m.runsView.View()
	}
	return m.feed.View()
}
