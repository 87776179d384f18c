// Package services wires the detector and the per-VCS providers together.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/xvierd/vcprompt/internal/domain"
	"github.com/xvierd/vcprompt/internal/ports"
	"go.uber.org/zap"
)

// StatusService implements ports.StatusSource.
type StatusService struct {
	detector ports.Detector
	git      ports.StatusProvider
	hg       ports.StatusProvider
	logger   *zap.Logger
}

// NewStatusService creates a new status service.
func NewStatusService(detector ports.Detector, git, hg ports.StatusProvider, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{
		detector: detector,
		git:      git,
		hg:       hg,
		logger:   logger,
	}
}

// Ensure StatusService implements ports.StatusSource.
var _ ports.StatusSource = (*StatusService)(nil)

// Status returns the status of the repository enclosing workingDir.
// It returns nil without error when there is no repository or the VCS
// command failed; only environment faults such as a missing binary are
// returned as errors.
func (s *StatusService) Status(ctx context.Context, workingDir string) (*domain.Status, error) {
	kind, root, err := s.detector.Detect(workingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to detect repository: %w", err)
	}

	var provider ports.StatusProvider
	switch kind {
	case domain.KindNone:
		return nil, nil
	case domain.KindGit:
		provider = s.git
	case domain.KindHg:
		provider = s.hg
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedVCS, kind)
	}

	status, err := provider.Status(ctx, root)
	if err != nil {
		if errors.Is(err, domain.ErrCommandFailed) {
			s.logger.Debug("no status available", zap.Stringer("kind", kind), zap.Error(err))
			return nil, nil
		}
		return nil, err
	}

	return status, nil
}
