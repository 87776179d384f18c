// Package git reads the state of a Git working copy from
// `git status --porcelain=2` output and from files under .git.
package git

import (
	"strconv"
	"strings"

	"github.com/xvierd/vcprompt/internal/domain"
)

// Name and Symbol identify Git in a Status.
const (
	Name   = "git"
	Symbol = "±"
)

// ParseStatus parses the output of
// `git status --porcelain=2 --branch --untracked-files`.
// See https://git-scm.com/docs/git-status#_porcelain_format_version_2.
// Lines it does not understand are ignored.
func ParseStatus(raw string) *domain.Status {
	result := domain.NewStatus(Name, Symbol)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.Split(line, " ")

		switch parts[0] {
		case "#":
			parseHeader(result, parts)
		case "1", "2":
			// XY is two characters; anything wider is submodule state,
			// which git also reports through Y, so skip it.
			if len(parts) < 2 || len(parts[1]) != 2 {
				continue
			}
			if parts[1][0] != '.' {
				result.Staged++
			}
			if parts[1][1] != '.' {
				result.Changed++
			}
		case "u":
			result.Conflicts++
		case "?":
			result.Untracked++
		}
	}

	return result
}

// parseHeader handles a "# branch.<key> ..." line.
func parseHeader(result *domain.Status, parts []string) {
	if len(parts) < 3 {
		return
	}
	switch parts[1] {
	case "branch.head":
		result.Branch = parts[2]
	case "branch.ab":
		if len(parts) < 4 {
			return
		}
		ahead, errA := strconv.Atoi(parts[2])
		behind, errB := strconv.Atoi(parts[3])
		if errA != nil || errB != nil {
			return
		}
		result.Ahead = abs(ahead)
		result.Behind = abs(behind)
	}
}

func abs(n int) uint {
	if n < 0 {
		return uint(-n)
	}
	return uint(n)
}
