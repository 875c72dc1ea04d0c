package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Prompter asks the player for input through the TUI and blocks until a
// valid answer arrives
type Prompter struct {
	model  *TUIModel
	logger *log.Logger
}

// NewPrompter creates a prompter reading from model
func NewPrompter(model *TUIModel, logger *log.Logger) *Prompter {
	return &Prompter{
		model:  model,
		logger: logger.WithPrefix("prompt"),
	}
}

// RequestChoice shows prompt and waits for one of allowed. Invalid answers
// are reported and the prompt repeats. Matching ignores case and
// surrounding whitespace.
func (p *Prompter) RequestChoice(ctx context.Context, prompt string, allowed []string) (string, error) {
	return p.request(ctx, prompt, nil, allowed)
}

// Choose shows a numbered menu and returns the key of the chosen option
func (p *Prompter) Choose(ctx context.Context, prompt string, options []Option) (string, error) {
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = o.Key
	}
	return p.request(ctx, prompt, options, keys)
}

func (p *Prompter) request(ctx context.Context, prompt string, options []Option, allowed []string) (string, error) {
	p.model.SetPrompt(prompt, options)
	defer p.model.SetPrompt("", nil)

	for {
		input, err := p.model.WaitForInput(ctx)
		if err != nil {
			return "", err
		}

		answer := strings.ToLower(strings.TrimSpace(input))
		if i := slices.IndexFunc(allowed, func(a string) bool { return strings.EqualFold(a, answer) }); i >= 0 {
			p.logger.Debug("Accepted input", "prompt", prompt, "answer", allowed[i])
			return allowed[i], nil
		}

		p.logger.Debug("Rejected input", "prompt", prompt, "input", input)
		p.model.AddLogEntry(ErrorStyle.Render(fmt.Sprintf("%q is not a valid choice (%s)", input, strings.Join(allowed, ", "))))
	}
}
