package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// TUIModel represents the Bubble Tea model for the blackjack table
type TUIModel struct {
	logger  *log.Logger
	program *tea.Program

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog      []string
	actionResult chan ActionResult
	quitSignal   chan bool
	quitting     bool
	left         chan struct{}
	leaveOnce    sync.Once
	focusedPane  int // 0 = log, 1 = input

	// Display state, projected from table events
	prompt  string
	options []Option
	table   TableView

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// ActionResult represents a line of user input
type ActionResult struct {
	Input string
	Quit  bool
}

// TableView is the read-only table state shown in the sidebar
type TableView struct {
	Round          int
	Wallet         game.Money
	CardsRemaining int
	Dealer         game.HandState
	DealerRevealed bool
	Hands          []game.HandState
	CurrentHand    int
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

type logEntryMsg struct {
	entry string
	bold  bool
}

type promptMsg struct {
	prompt  string
	options []Option
}

type tableMsg struct {
	view TableView
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	// Properly sized when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a number"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(brass).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(chalk)
	ti.Prompt = "> "

	return &TUIModel{
		logger:       logger.WithPrefix("tui"),
		logViewport:  vp,
		actionInput:  ti,
		gameLog:      []string{},
		actionResult: make(chan ActionResult, inputBuffer(testMode)),
		quitSignal:   make(chan bool, 1),
		left:         make(chan struct{}),
		focusedPane:  1, // Start with input focused
		testMode:     testMode,
		capturedLog:  []string{},
	}
}

// SetProgram connects the model to the program running it. Once set, state
// changes from the game goroutine are delivered as messages.
func (m *TUIModel) SetProgram(p *tea.Program) {
	m.program = p
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case logEntryMsg, promptMsg, tableMsg:
		m.apply(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.submit(ActionResult{Quit: true})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.submit(ActionResult{Input: strings.TrimSpace(m.actionInput.Value())})
				m.actionInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// post delivers a state change. With a running program it goes through the
// program's message loop; otherwise it is applied directly.
func (m *TUIModel) post(msg tea.Msg) {
	if m.program != nil && !m.testMode {
		m.program.Send(msg)
		return
	}
	m.apply(msg)
}

func (m *TUIModel) apply(msg tea.Msg) {
	switch msg := msg.(type) {
	case logEntryMsg:
		if msg.bold {
			m.addBoldLogEntry(msg.entry)
		} else {
			m.addLogEntry(msg.entry)
		}
	case promptMsg:
		m.prompt = msg.prompt
		m.options = msg.options
	case tableMsg:
		m.table = msg.view
	}
}

// submit hands input to a waiting game loop without blocking the UI. A
// quit discards any input the game loop has not read yet and stays in force
// for every later wait.
func (m *TUIModel) submit(result ActionResult) {
	if result.Quit {
		m.leaveOnce.Do(func() { close(m.left) })
		m.drainInput()
		return
	}
	select {
	case m.actionResult <- result:
	default:
		m.logger.Debug("Dropped input, game loop is busy", "input", result.Input)
	}
}

func (m *TUIModel) drainInput() {
	for {
		select {
		case pending := <-m.actionResult:
			m.logger.Debug("Discarded unread input", "input", pending.Input)
		default:
			return
		}
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(brass).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(smoke).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(m.renderLogPane())
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// On first proper sizing, start at the bottom of the log
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(smoke).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(brass)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane shows the wallet, the dealer and the player's hands
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder
	view := m.table

	content.WriteString(WalletStyle.Render("Wallet: " + view.Wallet.String()))
	content.WriteString("\n")
	if view.Round > 0 {
		content.WriteString(DimStyle.Render(fmt.Sprintf("Round %d · %d cards in shoe", view.Round, view.CardsRemaining)))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	if len(view.Dealer.Cards) > 0 {
		content.WriteString(PromptStyle.Render("Dealer"))
		content.WriteString("\n  ")
		if view.DealerRevealed {
			content.WriteString(FormatHand(view.Dealer))
		} else {
			content.WriteString(FormatCards(view.Dealer.Cards[:1]) + " " + HiddenCardStyle.Render("[??]"))
		}
		content.WriteString("\n\n")
	}

	for i, hand := range view.Hands {
		label := "You"
		if len(view.Hands) > 1 {
			label = fmt.Sprintf("Hand %d", i+1)
		}
		style := HandLabelStyle
		if i == view.CurrentHand && len(view.Hands) > 1 {
			style = PromptStyle
		}
		content.WriteString(style.Render(fmt.Sprintf("%s (%s)", label, hand.Bet)))
		content.WriteString("\n  ")
		content.WriteString(FormatHand(hand))
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane renders the prompt, its menu and the input line
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if m.prompt != "" {
		content.WriteString(PromptStyle.Render(m.prompt))
		content.WriteString("\n")
		content.WriteString(FormatOptions(m.options))
		content.WriteString("\n")
	} else {
		content.WriteString(PromptStyle.Render("Dealing..."))
		content.WriteString("\n")
	}

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(DimStyle.Render(help))

	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.post(logEntryMsg{entry: entry})
}

// AddBoldLogEntry adds a bold entry to the game log
func (m *TUIModel) AddBoldLogEntry(entry string) {
	m.post(logEntryMsg{entry: entry, bold: true})
}

// SetPrompt shows a prompt and its options in the action pane
func (m *TUIModel) SetPrompt(prompt string, options []Option) {
	m.post(promptMsg{prompt: prompt, options: options})
}

// UpdateTable replaces the sidebar view of the table
func (m *TUIModel) UpdateTable(view TableView) {
	m.post(tableMsg{view: view})
}

func (m *TUIModel) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *TUIModel) addBoldLogEntry(entry string) {
	if m.testMode {
		m.gameLog = append(m.gameLog, entry)
		m.capturedLog = append(m.capturedLog, entry)
		return
	}
	m.addLogEntry(BoldStyle.Render(entry))
}

// Prompt returns the current prompt text
func (m *TUIModel) Prompt() string {
	return m.prompt
}

// Table returns the current sidebar view
func (m *TUIModel) Table() TableView {
	return m.table
}

// WaitForInput waits for a line of user input. Quitting the UI returns
// game.ErrPlayerQuit.
func (m *TUIModel) WaitForInput(ctx context.Context) (string, error) {
	select {
	case <-m.left:
		return "", game.ErrPlayerQuit
	default:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-m.left:
		return "", game.ErrPlayerQuit
	case result := <-m.actionResult:
		return result.Input, nil
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Channel is full, quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectInput programmatically injects a line of input (test mode only)
func (m *TUIModel) InjectInput(input string) error {
	if !m.testMode {
		return fmt.Errorf("input injection only available in test mode")
	}

	select {
	case m.actionResult <- ActionResult{Input: input}:
		return nil
	default:
		return fmt.Errorf("input channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// Tests queue scripted input ahead of the game loop
func inputBuffer(testMode bool) int {
	if testMode {
		return 64
	}
	return 1
}
