package models

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

const stderrTailBytes = 512

// CommandModel shells out to an external text-generation command. The
// prompt goes to the command's stdin; the response is read from stdout and
// whitespace-trimmed. Timeouts and interruption arrive via the context,
// which kills the process so nothing is left orphaned.
type CommandModel struct {
	Command string
	Args    []string
	Logger  *log.Logger
}

// NewCommandModel builds a CommandModel for the given executable. An empty
// command defaults to "claude".
func NewCommandModel(command string, args ...string) *CommandModel {
	if strings.TrimSpace(command) == "" {
		command = "claude"
	}
	return &CommandModel{Command: command, Args: args, Logger: log.Default()}
}

func (m *CommandModel) logf(format string, args ...any) {
	logger := m.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

func (m *CommandModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.logf("[oracle] calling %s with %d character prompt", m.Command, len(prompt))

	cmd := exec.CommandContext(ctx, m.Command, m.Args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		// The process was killed by the context; cmd.Run has already
		// reaped it.
		m.logf("[oracle] %s terminated: %v", m.Command, ctxErr)
		return "", fmt.Errorf("oracle command %s: %w", m.Command, ctxErr)
	}
	if err != nil {
		detail := stderrTail(stderr.String())
		m.logf("[oracle] %s failed: %v (%s)", m.Command, err, detail)
		if detail != "" {
			return "", fmt.Errorf("oracle command %s: %w: %s", m.Command, err, detail)
		}
		return "", fmt.Errorf("oracle command %s: %w", m.Command, err)
	}

	result := strings.TrimSpace(stdout.String())
	m.logf("[oracle] %s responded with %d characters", m.Command, len(result))
	return result, nil
}

// stderrTail keeps the end of a stderr capture, where CLI tools put the
// actual error.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailBytes {
		s = "..." + s[len(s)-stderrTailBytes:]
	}
	return s
}

var _ Model = (*CommandModel)(nil)
