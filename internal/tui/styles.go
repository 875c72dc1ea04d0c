package tui

import "github.com/charmbracelet/lipgloss"

// Table palette
var (
	feltGreen = lipgloss.Color("#0B6623")
	chalk     = lipgloss.Color("#F5F5F0")
	brass     = lipgloss.Color("#E1B941")
	cardRed   = lipgloss.Color("#E0474C")
	smoke     = lipgloss.Color("#7A7A7A")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(chalk).
			Background(feltGreen).
			Padding(0, 1).
			Bold(true)

	PromptStyle    = lipgloss.NewStyle().Foreground(brass).Bold(true)
	MenuKeyStyle   = lipgloss.NewStyle().Foreground(brass).Bold(true)
	HandLabelStyle = lipgloss.NewStyle().Foreground(chalk)
	WalletStyle    = lipgloss.NewStyle().Foreground(brass).Bold(true)
	DimStyle       = lipgloss.NewStyle().Foreground(smoke)
	BoldStyle      = lipgloss.NewStyle().Bold(true)

	// Cards
	RedCardStyle    = lipgloss.NewStyle().Foreground(cardRed).Bold(true)
	BlackCardStyle  = lipgloss.NewStyle().Foreground(chalk).Bold(true)
	HiddenCardStyle = lipgloss.NewStyle().Foreground(smoke)

	// Outcomes and input errors
	WinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD068")).Bold(true)
	PushStyle  = lipgloss.NewStyle().Foreground(brass)
	LossStyle  = lipgloss.NewStyle().Foreground(cardRed).Bold(true)
	ErrorStyle = LossStyle
)
