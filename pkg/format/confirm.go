package format

import (
	"context"
	"errors"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// DefaultConfirmMessage is asked when ConfirmAction receives no message.
const DefaultConfirmMessage = "Tem certeza que deseja realizar esta ação?"

// ErrAborted signals the user aborted the prompt (e.g., Ctrl+C).
var ErrAborted = errors.New("format: confirmation aborted")

// Confirmer asks a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmerFunc adapts a function into a Confirmer.
type ConfirmerFunc func(ctx context.Context, message string) (bool, error)

// Confirm delegates to the underlying function.
func (fn ConfirmerFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return fn(ctx, message)
}

// ConfirmAction asks c for confirmation, using DefaultConfirmMessage when
// message is blank. It blocks until the user answers.
func ConfirmAction(ctx context.Context, c Confirmer, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if c == nil {
		c = SurveyConfirmer{}
	}
	if strings.TrimSpace(message) == "" {
		message = DefaultConfirmMessage
	}
	return c.Confirm(ctx, message)
}

// SurveyConfirmer prompts on the terminal.
type SurveyConfirmer struct {
	Default bool
	Help    string
	Options []survey.AskOpt
}

// Confirm implements Confirmer.
func (s SurveyConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: s.Default,
		Help:    s.Help,
	}
	if err := survey.AskOne(prompt, &out, s.Options...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, ErrAborted
		}
		return false, err
	}
	return out, nil
}
