package git

import (
	"os"
	"path/filepath"
)

// operation maps a marker below .git to the label shown in the prompt.
type operation struct {
	marker string
	label  string
}

// operations are reported in this order.
var operations = []operation{
	{"rebase-merge", "REBASE"},
	{"rebase-apply", "AM/REBASE"},
	{"MERGE_HEAD", "MERGING"},
	{"CHERRY_PICK_HEAD", "CHERRY-PICKING"},
	{"REVERT_HEAD", "REVERTING"},
	{"BISECT_LOG", "BISECTING"},
}

// DetectOperations returns the labels of all operations in progress in
// the repository whose metadata directory is gitDir.
func DetectOperations(gitDir string) []string {
	found := []string{}
	for _, op := range operations {
		if _, err := os.Stat(filepath.Join(gitDir, op.marker)); err == nil {
			found = append(found, op.label)
		}
	}
	return found
}

// GitDir returns the metadata directory of the repository rooted at root.
func GitDir(root string) string {
	return filepath.Join(root, ".git")
}
