// Package confirm provides interactive prompt utilities for terminal workflows.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/gitopsware/gitopsctl/pkg/utils/notify"
)

// ErrCancelled is returned when the user cancels an operation at a prompt.
var ErrCancelled = errors.New("operation cancelled")

// ErrInputClosed is returned when stdin closes before the prompt is answered.
var ErrInputClosed = errors.New("input stream closed")

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader for testing.
// Returns a restore function that should be called to reset the override.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

// getStdinReader returns the stdin reader to use, respecting test overrides.
func getStdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY returns true if stdin is connected to a terminal.
// This is used to skip confirmation prompts in non-interactive environments (CI/pipelines).
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ShouldSkipPrompt returns true if the confirmation prompt should be skipped.
// This happens when:
// - force flag is set, OR
// - stdin is not a TTY (non-interactive environment)
func ShouldSkipPrompt(force bool) bool {
	return force || !IsTTY()
}

// readLine reads a single trimmed line from the prompt's input stream.
// The read runs on its own goroutine so that a cancelled context (Ctrl-C)
// interrupts a prompt that is blocked on stdin.
func readLine(ctx context.Context) (string, error) {
	type lineResult struct {
		line string
		err  error
	}

	results := make(chan lineResult, 1)

	go func() {
		line, err := readLineBlocking(getStdinReader())
		results <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-results:
		return result.line, result.err
	}
}

// readLineBlocking reads unbuffered so that re-prompting never consumes
// input beyond the current line.
func readLineBlocking(reader io.Reader) (string, error) {
	var line strings.Builder

	buf := make([]byte, 1)

	for {
		n, err := reader.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSpace(line.String()), nil
			}

			line.WriteByte(buf[0])
		}

		if err != nil {
			if line.Len() == 0 {
				return "", ErrInputClosed
			}

			return strings.TrimSpace(line.String()), nil
		}
	}
}

// PromptYesNo asks a yes/no question and re-prompts until the answer is
// recognizable. Accepts "y"/"yes" and "n"/"no" case-insensitively.
func PromptYesNo(ctx context.Context, writer io.Writer, format string, args ...any) (bool, error) {
	for {
		notify.WriteMessage(notify.Message{
			Type:    notify.WarningType,
			Content: format + " (y/n): ",
			Args:    args,
			Writer:  writer,
		})

		input, err := readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		notify.Errorf(writer, "please answer 'y' or 'n'")
	}
}

// PromptLine prompts for a single line of input and re-prompts until the
// validate function accepts it. A nil validate accepts any input.
func PromptLine(ctx context.Context, writer io.Writer, label string, validate func(string) error) (string, error) {
	for {
		notify.WriteMessage(notify.Message{
			Type:    notify.ActivityType,
			Content: label + ": ",
			Writer:  writer,
		})

		input, err := readLine(ctx)
		if err != nil {
			return "", err
		}

		if validate == nil {
			return input, nil
		}

		validationErr := validate(input)
		if validationErr == nil {
			return input, nil
		}

		notify.Errorf(writer, "%v", validationErr)
	}
}

// PromptChoice presents numbered options and returns the 1-based index of the
// selected option. It re-prompts until the input is a valid option number.
func PromptChoice(ctx context.Context, writer io.Writer, question string, options ...string) (int, error) {
	var prompt strings.Builder

	prompt.WriteString(question)

	for i, option := range options {
		prompt.WriteString(fmt.Sprintf("\n%d. %s", i+1, option))
	}

	for {
		notify.WriteMessage(notify.Message{
			Type:    notify.InfoType,
			Content: prompt.String(),
			Writer:  writer,
		})
		notify.Activityf(writer, "choose (1-%d): ", len(options))

		input, err := readLine(ctx)
		if err != nil {
			return 0, err
		}

		for i := range options {
			if input == fmt.Sprintf("%d", i+1) {
				return i + 1, nil
			}
		}

		notify.Errorf(writer, "please enter a number between 1 and %d", len(options))
	}
}
