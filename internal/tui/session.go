package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Session runs the Bubble Tea program for one sitting at the table. The
// program owns the terminal; the game loop runs on the caller's goroutine
// and reaches the player through Agent.
type Session struct {
	model    *TUIModel
	program  *tea.Program
	agent    *HumanAgent
	logger   *log.Logger
	finished chan struct{}
}

// NewSession creates a full-screen session for table
func NewSession(table *game.Table, logger *log.Logger) *Session {
	model := NewTUIModel(logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(program)

	table.Events().Subscribe(NewEventRenderer(model, table.State))

	return &Session{
		model:    model,
		program:  program,
		agent:    NewHumanAgent(NewPrompter(model, logger), logger),
		logger:   logger.WithPrefix("ui"),
		finished: make(chan struct{}),
	}
}

// Agent returns the human agent reading from this session
func (s *Session) Agent() *HumanAgent {
	return s.agent
}

// Model returns the underlying model
func (s *Session) Model() *TUIModel {
	return s.model
}

// Start runs the program in the background
func (s *Session) Start() {
	go func() {
		defer close(s.finished)
		if _, err := s.program.Run(); err != nil {
			s.logger.Error("TUI stopped", "error", err)
		}
	}()
}

// Close stops the program and waits for the terminal to be restored
func (s *Session) Close() error {
	s.model.SendQuitSignal()
	<-s.finished
	return nil
}

// Done is closed when the program exits, including when the player quits
func (s *Session) Done() <-chan struct{} {
	return s.finished
}

