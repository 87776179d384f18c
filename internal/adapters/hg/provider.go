package hg

import (
	"context"

	"github.com/xvierd/vcprompt/internal/domain"
	"github.com/xvierd/vcprompt/internal/ports"
	"go.uber.org/zap"
)

// Provider implements ports.StatusProvider for Mercurial.
type Provider struct {
	runner ports.CommandRunner
	logger *zap.Logger
}

// NewProvider creates a Mercurial status provider running commands through runner.
func NewProvider(runner ports.CommandRunner, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{runner: runner, logger: logger}
}

// Ensure Provider implements ports.StatusProvider.
var _ ports.StatusProvider = (*Provider)(nil)

// Status runs hg status in root and returns the parsed result with the
// branch and bookmark read from .hg.
func (p *Provider) Status(ctx context.Context, root string) (*domain.Status, error) {
	raw, err := p.runner.Run(ctx, domain.KindHg, root)
	if err != nil {
		return nil, err
	}

	status := ParseStatus(raw)
	status.Branch = ResolveBranch(root)
	p.logger.Debug("hg branch resolved", zap.String("branch", status.Branch))

	return status, nil
}
