package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOperations(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		dirs  []string
		want  []string
	}{
		{
			name: "none",
			want: []string{},
		},
		{
			name:  "merge",
			files: []string{"MERGE_HEAD"},
			want:  []string{"MERGING"},
		},
		{
			name:  "rebase with merge in priority order",
			files: []string{"MERGE_HEAD"},
			dirs:  []string{"rebase-merge"},
			want:  []string{"REBASE", "MERGING"},
		},
		{
			name:  "all",
			files: []string{"BISECT_LOG", "REVERT_HEAD", "CHERRY_PICK_HEAD", "MERGE_HEAD"},
			dirs:  []string{"rebase-apply", "rebase-merge"},
			want:  []string{"REBASE", "AM/REBASE", "MERGING", "CHERRY-PICKING", "REVERTING", "BISECTING"},
		},
		{
			name:  "unrelated files",
			files: []string{"ORIG_HEAD", "FETCH_HEAD"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gitDir := GitDir(t.TempDir())
			require.NoError(t, os.MkdirAll(gitDir, 0755))
			for _, d := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(gitDir, d), 0755))
			}
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(gitDir, f), nil, 0644))
			}

			assert.Equal(t, tt.want, DetectOperations(gitDir))
		})
	}
}

func TestDetectOperations_MissingGitDir(t *testing.T) {
	got := DetectOperations(filepath.Join(t.TempDir(), "nope"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
