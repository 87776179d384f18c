// Package domain contains the core types shared by the VCS adapters,
// the status service and the formatter. Nothing in here touches the
// filesystem or spawns processes.
package domain

import (
	"errors"
)

// Common domain errors.
var (
	ErrToolUnavailable = errors.New("vcs tool unavailable")
	ErrCommandFailed   = errors.New("vcs status command failed")
	ErrUnsupportedVCS  = errors.New("unsupported vcs")
)

// UnknownBranch is the branch name used when it could not be determined.
const UnknownBranch = "<unknown>"

// Kind identifies a version control system.
type Kind int

const (
	KindNone Kind = iota
	KindGit
	KindHg
)

// String returns the short name of the VCS kind.
func (k Kind) String() string {
	switch k {
	case KindGit:
		return "git"
	case KindHg:
		return "hg"
	default:
		return "none"
	}
}

// Status is a normalized snapshot of a working copy.
type Status struct {
	Name       string   `json:"name"`
	Symbol     string   `json:"symbol"`
	Branch     string   `json:"branch"`
	Ahead      uint     `json:"ahead"`
	Behind     uint     `json:"behind"`
	Staged     uint     `json:"staged"`
	Changed    uint     `json:"changed"`
	Untracked  uint     `json:"untracked"`
	Conflicts  uint     `json:"conflicts"`
	Operations []string `json:"operations"`
	Commit     string   `json:"commit,omitempty"`
}

// NewStatus returns an empty status for the given VCS name and symbol.
func NewStatus(name, symbol string) *Status {
	return &Status{
		Name:       name,
		Symbol:     symbol,
		Branch:     UnknownBranch,
		Operations: []string{},
	}
}

// IsClean reports whether there is nothing staged, changed, conflicted
// or untracked.
func (s *Status) IsClean() bool {
	return s.Staged == 0 && s.Changed == 0 && s.Conflicts == 0 && s.Untracked == 0
}

// HasOperations reports whether an operation such as a merge or rebase
// is in progress.
func (s *Status) HasOperations() bool {
	return len(s.Operations) > 0
}
