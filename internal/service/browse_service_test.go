package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowseService_ListsVisibleFoldersSorted(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"zeta", "alpha", ".git", "mid"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0o755))
	}
	writeFile(t, filepath.Join(root, "file.txt"), "x")

	result, err := NewBrowseService(root).Browse(root)
	require.NoError(t, err)

	assert.Equal(t, root, result.CurrentPath)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, result.Folders)
	require.NotNil(t, result.ParentPath)
	assert.Equal(t, filepath.Dir(root), *result.ParentPath)
}

func TestBrowseService_FallsBackToDefaultRoot(t *testing.T) {
	root := t.TempDir()

	result, err := NewBrowseService(root).Browse(filepath.Join(root, "does", "not", "exist"))
	require.NoError(t, err)
	assert.Equal(t, root, result.CurrentPath)

	result, err = NewBrowseService(root).Browse("")
	require.NoError(t, err)
	assert.Equal(t, root, result.CurrentPath)
}

func TestBrowseService_FallsBackToWorkingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	wd, err := os.Getwd()
	require.NoError(t, err)

	result, err := NewBrowseService(missing).Browse("")
	require.NoError(t, err)
	assert.Equal(t, wd, result.CurrentPath)
}

func TestBrowseService_FileUsesItsDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x")

	result, err := NewBrowseService(root).Browse(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, root, result.CurrentPath)
}

func TestBrowseService_RootHasNoParent(t *testing.T) {
	result, err := NewBrowseService("/").Browse("/")
	require.NoError(t, err)
	assert.Equal(t, "/", result.CurrentPath)
	assert.Nil(t, result.ParentPath)
}
