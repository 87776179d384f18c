package git

import (
	"context"

	"github.com/xvierd/vcprompt/internal/domain"
	"github.com/xvierd/vcprompt/internal/ports"
	"go.uber.org/zap"
)

// Provider implements ports.StatusProvider for Git.
type Provider struct {
	runner ports.CommandRunner
	logger *zap.Logger
}

// NewProvider creates a Git status provider running commands through runner.
func NewProvider(runner ports.CommandRunner, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{runner: runner, logger: logger}
}

// Ensure Provider implements ports.StatusProvider.
var _ ports.StatusProvider = (*Provider)(nil)

// Status runs git status in root and returns the parsed result, including
// in-progress operations and the abbreviated HEAD commit.
func (p *Provider) Status(ctx context.Context, root string) (*domain.Status, error) {
	raw, err := p.runner.Run(ctx, domain.KindGit, root)
	if err != nil {
		return nil, err
	}

	status := ParseStatus(raw)
	status.Operations = DetectOperations(GitDir(root))

	commit, err := HeadCommit(root)
	if err != nil {
		p.logger.Debug("head commit unavailable", zap.String("root", root), zap.Error(err))
	} else {
		status.Commit = commit
	}

	return status, nil
}
