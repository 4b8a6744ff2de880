package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands on behalf of a Context. The seam
// exists so unit tests can substitute canned output for real git
// invocations.
type CommandRunner interface {
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns the default command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command in dir and returns trimmed stdout. Command
// failures carry git's stderr; a missing git binary maps to
// ErrBackendUnavailable.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return stdout.String(), fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return stdout.String(), err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// SequentialMockRunner replays canned responses in call order and records
// every command it receives. Test-only.
type SequentialMockRunner struct {
	Commands [][]string // recorded invocations: name followed by args

	responses []mockResponse
}

type mockResponse struct {
	output string
	err    error
}

// NewSequentialMockRunner returns an empty mock runner.
func NewSequentialMockRunner() *SequentialMockRunner {
	return &SequentialMockRunner{}
}

// Expect queues a response for the next command.
func (m *SequentialMockRunner) Expect(output string, err error) {
	m.responses = append(m.responses, mockResponse{output: output, err: err})
}

// Run pops the next queued response. Running off the end of the queue is a
// test setup mistake and returns an error saying so.
func (m *SequentialMockRunner) Run(dir, name string, args ...string) (string, error) {
	m.Commands = append(m.Commands, append([]string{name}, args...))
	if len(m.responses) == 0 {
		return "", fmt.Errorf("unexpected command: %s %s", name, strings.Join(args, " "))
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.output, resp.err
}
