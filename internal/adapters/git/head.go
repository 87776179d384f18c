package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// shortHashLen is the length of an abbreviated commit hash.
const shortHashLen = 7

// HeadCommit returns the abbreviated hash of the commit HEAD points to in
// the repository rooted at root.
func HeadCommit(root string) (string, error) {
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	return ShortCommit(head.Hash().String()), nil
}

// ShortCommit returns a shortened commit hash.
func ShortCommit(commit string) string {
	if len(commit) > shortHashLen {
		return commit[:shortHashLen]
	}
	return commit
}
