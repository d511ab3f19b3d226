package terminal

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Prompter asks the player to pick an option or type a value.
type Prompter interface {
	Select(title string, options []string) (string, error)
	Input(title string) (string, error)
}

// ptermPrompter reads answers from the interactive pterm widgets.
type ptermPrompter struct{}

func NewPrompter() Prompter {
	return ptermPrompter{}
}

func (ptermPrompter) Select(title string, options []string) (string, error) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(title).
		WithOptions(options).
		Show()
	if err != nil {
		return "", fmt.Errorf("failed to show select: %w", err)
	}

	return choice, nil
}

func (ptermPrompter) Input(title string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(title).
		Show()
	if err != nil {
		return "", fmt.Errorf("failed to show input: %w", err)
	}

	return answer, nil
}
