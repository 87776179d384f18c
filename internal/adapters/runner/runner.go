// Package runner executes VCS status commands.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/xvierd/vcprompt/internal/domain"
	"github.com/xvierd/vcprompt/internal/ports"
	"go.uber.org/zap"
)

// Default executables.
const (
	DefaultGitBinary = "git"
	DefaultHgBinary  = "hg"
)

// ExitError describes a status command that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

// Unwrap lets callers match the failure with errors.Is(err, domain.ErrCommandFailed).
func (e *ExitError) Unwrap() error {
	return domain.ErrCommandFailed
}

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	gitBinary string
	hgBinary  string
	logger    *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithGitBinary overrides the git executable.
func WithGitBinary(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.gitBinary = path
		}
	}
}

// WithHgBinary overrides the hg executable.
func WithHgBinary(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.hgBinary = path
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		gitBinary: DefaultGitBinary,
		hgBinary:  DefaultHgBinary,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ensure Runner implements ports.CommandRunner.
var _ ports.CommandRunner = (*Runner)(nil)

// Args returns the executable and arguments of the status command for kind.
func (r *Runner) Args(kind domain.Kind) (string, []string, error) {
	switch kind {
	case domain.KindGit:
		return r.gitBinary, []string{"status", "--porcelain=2", "--branch", "--untracked-files"}, nil
	case domain.KindHg:
		return r.hgBinary, []string{"status", "--color=false", "--pager=false"}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedVCS, kind)
	}
}

// Run executes the status command for kind in workingDir and returns its stdout.
func (r *Runner) Run(ctx context.Context, kind domain.Kind, workingDir string) (string, error) {
	name, args, err := r.Args(kind)
	if err != nil {
		return "", err
	}

	command := name + " " + strings.Join(args, " ")
	r.logger.Debug("run", zap.String("command", command), zap.String("cwd", workingDir))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workingDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			failure := &ExitError{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
			r.logger.Debug("status command failed", zap.Error(failure))
			return "", failure
		}
		return "", fmt.Errorf("%w: failed to execute %q: %v", domain.ErrToolUnavailable, name, err)
	}

	r.logger.Debug("ok", zap.String("command", command), zap.Int("bytes", len(output)))
	return string(output), nil
}
