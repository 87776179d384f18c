// Package detect finds the version control system governing a directory.
package detect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xvierd/vcprompt/internal/domain"
	"github.com/xvierd/vcprompt/internal/ports"
	"go.uber.org/zap"
)

// marker is a file whose existence below a directory identifies a VCS.
type marker struct {
	kind domain.Kind
	path string
}

// markers are tested in order within each directory, so a directory
// holding both a Git and a Mercurial repository is reported as Git.
var markers = []marker{
	{domain.KindGit, filepath.Join(".git", "HEAD")},
	{domain.KindHg, filepath.Join(".hg", "00changelog.i")},
}

// Detector implements the ports.Detector interface by walking up the
// directory tree looking for marker files.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new detector.
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger}
}

// Ensure Detector implements ports.Detector.
var _ ports.Detector = (*Detector)(nil)

// Detect returns the kind and root of the innermost repository enclosing
// workingDir. An empty workingDir means the current directory.
func (d *Detector) Detect(workingDir string) (domain.Kind, string, error) {
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return domain.KindNone, "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	start, err := filepath.Abs(workingDir)
	if err != nil {
		return domain.KindNone, "", fmt.Errorf("failed to resolve %s: %w", workingDir, err)
	}

	kind, root := findRepo(start)
	if kind == domain.KindNone {
		d.logger.Debug("no repository found", zap.String("dir", start))
	} else {
		d.logger.Debug("repository detected",
			zap.Stringer("kind", kind),
			zap.String("root", root))
	}
	return kind, root, nil
}

// findRepo traverses up the directory tree from startPath.
func findRepo(startPath string) (domain.Kind, string) {
	currentPath := startPath

	for {
		for _, m := range markers {
			if exists(filepath.Join(currentPath, m.path)) {
				return m.kind, currentPath
			}
		}

		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			break
		}
		currentPath = parent
	}

	return domain.KindNone, ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
