// Package ports defines the interfaces between the status service and the
// adapters that talk to the filesystem, VCS binaries and the terminal.
package ports

import (
	"context"

	"github.com/xvierd/vcprompt/internal/domain"
)

// Detector locates the innermost repository enclosing a directory.
// This is a driven port (implemented by adapters).
type Detector interface {
	// Detect returns the VCS kind and root directory governing workingDir.
	// When no repository is found it returns domain.KindNone and an empty root.
	Detect(workingDir string) (domain.Kind, string, error)
}

// CommandRunner executes the status subcommand of a VCS binary.
// This is a driven port (implemented by adapters).
type CommandRunner interface {
	// Run returns the captured stdout of the status command run in workingDir.
	Run(ctx context.Context, kind domain.Kind, workingDir string) (string, error)
}

// StatusProvider produces a Status for a repository root of one VCS kind.
// This is a driven port (implemented by adapters).
type StatusProvider interface {
	Status(ctx context.Context, root string) (*domain.Status, error)
}

// StatusSource yields the status of the repository enclosing a directory,
// or nil when there is nothing to report.
// This is a driving port (implemented by the services layer).
type StatusSource interface {
	Status(ctx context.Context, workingDir string) (*domain.Status, error)
}

// Formatter renders a Status into a prompt string.
type Formatter interface {
	Format(status *domain.Status) string
}
