// Package hg reads the state of a Mercurial working copy from `hg status`
// output and from metadata files under .hg.
package hg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xvierd/vcprompt/internal/domain"
)

// Name and Symbol identify Mercurial in a Status.
const (
	Name   = "hg"
	Symbol = "☿"
)

// DefaultBranch is reported when .hg/branch is missing or empty.
const DefaultBranch = "default"

// ParseStatus parses the output of `hg status --color=false --pager=false`.
// Mercurial has no index, so every modification counts as staged.
func ParseStatus(raw string) *domain.Status {
	result := domain.NewStatus(Name, Symbol)

	for _, line := range strings.Split(raw, "\n") {
		code, _, _ := strings.Cut(strings.TrimSuffix(line, "\r"), " ")
		switch code {
		case "M", "A", "R", "!":
			result.Staged++
		case "?":
			result.Untracked++
		}
	}

	return result
}

// ResolveBranch returns the current branch of the repository rooted at
// root, followed by "*bookmark" when a bookmark is active.
func ResolveBranch(root string) string {
	branch := readMeta(root, "branch")
	if branch == "" {
		branch = DefaultBranch
	}
	if bookmark := readMeta(root, "bookmarks.current"); bookmark != "" {
		branch += "*" + bookmark
	}
	return branch
}

// readMeta returns the trimmed contents of .hg/name, or "" if it cannot be read.
func readMeta(root, name string) string {
	data, err := os.ReadFile(filepath.Join(root, ".hg", name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
