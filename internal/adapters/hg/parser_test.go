package hg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/vcprompt/internal/domain"
)

type fakeRunner struct {
	output string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, kind domain.Kind, workingDir string) (string, error) {
	return f.output, f.err
}

func writeMeta(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hg", name), []byte(content), 0644))
}

func TestParseStatus_Full(t *testing.T) {
	output := `
M modified.txt
A added.txt
R removed.txt
C clean.txt
? untracked.txt
! deleted.txt
I ignored.txt
`
	expected := domain.NewStatus("hg", "☿")
	expected.Staged = 4
	expected.Untracked = 1

	assert.Equal(t, expected, ParseStatus(output))
}

func TestParseStatus_Clean(t *testing.T) {
	assert.Equal(t, domain.NewStatus("hg", "☿"), ParseStatus(""))
}

func TestParseStatus_ModifiedAndUntracked(t *testing.T) {
	got := ParseStatus("M a.txt\n? b.txt\n")

	assert.Equal(t, uint(1), got.Staged)
	assert.Equal(t, uint(1), got.Untracked)
	assert.Zero(t, got.Changed)
	assert.Zero(t, got.Conflicts)
	assert.Zero(t, got.Ahead)
	assert.Zero(t, got.Behind)
	assert.Empty(t, got.Operations)
}

func TestParseStatus_UnknownCodes(t *testing.T) {
	got := ParseStatus("X weird\nMM not-a-code\n  leading space\n")
	assert.Equal(t, domain.NewStatus("hg", "☿"), got)
}

func TestResolveBranch(t *testing.T) {
	tests := []struct {
		name     string
		branch   *string
		bookmark *string
		want     string
	}{
		{"no metadata", nil, nil, "default"},
		{"branch file", strPtr("stable\n"), nil, "stable"},
		{"empty branch file", strPtr("\n"), nil, "default"},
		{"bookmark only", nil, strPtr("feature-x"), "default*feature-x"},
		{"branch and bookmark", strPtr("stable"), strPtr("feature-x\n"), "stable*feature-x"},
		{"empty bookmark", strPtr("stable"), strPtr(""), "stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(root, ".hg"), 0755))
			if tt.branch != nil {
				writeMeta(t, root, "branch", *tt.branch)
			}
			if tt.bookmark != nil {
				writeMeta(t, root, "bookmarks.current", *tt.bookmark)
			}

			assert.Equal(t, tt.want, ResolveBranch(root))
		})
	}
}

func TestProvider_Status(t *testing.T) {
	root := t.TempDir()
	writeMeta(t, root, "bookmarks.current", "feature-x")

	status, err := NewProvider(&fakeRunner{output: "M a.txt\n? b.txt\n"}, nil).Status(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, "hg", status.Name)
	assert.Equal(t, "default*feature-x", status.Branch)
	assert.Equal(t, uint(1), status.Staged)
	assert.Equal(t, uint(1), status.Untracked)
}

func TestProvider_Status_RunnerError(t *testing.T) {
	status, err := NewProvider(&fakeRunner{err: domain.ErrToolUnavailable}, nil).Status(context.Background(), t.TempDir())
	assert.Nil(t, status)
	assert.ErrorIs(t, err, domain.ErrToolUnavailable)
}

func strPtr(s string) *string {
	return &s
}
