package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devdesk-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestSearchService(root string) *SearchService {
	return NewSearchService(root, []string{"json", "txt", "md", "py", "js", "css", "html"}, 1<<20, testLogger())
}

func TestSnippet_BoundedWindow(t *testing.T) {
	content := strings.Repeat("x", 60) + "NEEDLE" + strings.Repeat("y", 60)

	snippet, ok := Snippet(content, "needle", snippetRadius)
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(snippet, "..."))
	assert.True(t, strings.HasSuffix(snippet, "..."))
	inner := strings.TrimSuffix(strings.TrimPrefix(snippet, "..."), "...")
	assert.LessOrEqual(t, len(inner), 106)
	assert.Equal(t, strings.Repeat("x", 50)+"NEEDLE"+strings.Repeat("y", 50), inner)
}

func TestSnippet_ClampsAndFlattensNewlines(t *testing.T) {
	snippet, ok := Snippet("first line\nHello World\nlast", "hello", snippetRadius)
	require.True(t, ok)
	assert.Equal(t, "...first line Hello World last...", snippet)
}

func TestSnippet_MultibyteContent(t *testing.T) {
	content := strings.Repeat("é", 70) + "Ärger" + strings.Repeat("ü", 70)

	snippet, ok := Snippet(content, "ärger", 10)
	require.True(t, ok)
	assert.Equal(t, "..."+strings.Repeat("é", 10)+"Ärger"+strings.Repeat("ü", 10)+"...", snippet)
}

func TestSnippet_NoMatch(t *testing.T) {
	_, ok := Snippet("nothing here", "needle", snippetRadius)
	assert.False(t, ok)
}

func TestSearchService_FilenameAndContentMatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "deploy_notes.md"), "how to Deploy the service")
	writeFile(t, filepath.Join(root, "other.txt"), "unrelated")
	writeFile(t, filepath.Join(root, "deploy.bin"), "deploy")

	results, err := newTestSearchService(root).Search(context.Background(), "deploy", root, true)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, domain.MatchTypeFilename, results[0].MatchType)
	assert.Equal(t, "", results[0].Snippet)
	assert.Equal(t, domain.MatchTypeContent, results[1].MatchType)
	assert.Equal(t, "deploy_notes.md", results[1].File)
	assert.Equal(t, filepath.Join(root, "deploy_notes.md"), results[1].Path)
	assert.Equal(t, "...how to Deploy the service...", results[1].Snippet)
}

func TestSearchService_RecursiveVersusShallow(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.txt"), "token at top")
	writeFile(t, filepath.Join(root, "sub", "deep.txt"), "token below")
	writeFile(t, filepath.Join(root, "sub", "deeper", "deepest.json"), `{"k": "TOKEN"}`)

	service := newTestSearchService(root)

	shallow, err := service.Search(context.Background(), "token", root, false)
	require.NoError(t, err)
	require.Len(t, shallow, 1)
	assert.Equal(t, "top.txt", shallow[0].File)

	deep, err := service.Search(context.Background(), "token", root, true)
	require.NoError(t, err)
	assert.Len(t, deep, 3)
}

func TestSearchService_DropsInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bytes.txt"), "abc\xff\xfeneedle")

	results, err := newTestSearchService(root).Search(context.Background(), "NEEDLE", root, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "...abcneedle...", results[0].Snippet)
}

func TestSearchService_SkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "big.txt"), strings.Repeat("a", 64)+"needle")

	service := NewSearchService(root, []string{"txt"}, 32, testLogger())
	results, err := service.Search(context.Background(), "needle", root, true)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchService_ResolveRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	service := newTestSearchService(root)

	assert.Equal(t, other, service.ResolveRoot(other))
	assert.Equal(t, root, service.ResolveRoot(filepath.Join(other, "missing")))
	assert.Equal(t, root, service.ResolveRoot(""))
}

func TestSearchService_HonorsCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "needle")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSearchService(root).Search(ctx, "needle", root, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchService_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "a.txt"), "needle")
	writeFile(t, filepath.Join(target, "sub", "b.txt"), "needle")

	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	service := newTestSearchService(t.TempDir())
	root := service.ResolveRoot(link)
	require.Equal(t, link, root)

	shallow, err := service.Search(context.Background(), "needle", root, false)
	require.NoError(t, err)
	assert.Len(t, shallow, 1)

	deep, err := service.Search(context.Background(), "needle", root, true)
	require.NoError(t, err)
	require.Len(t, deep, 2)
	assert.Equal(t, filepath.Join(link, "a.txt"), deep[0].Path)
	assert.Equal(t, filepath.Join(link, "sub", "b.txt"), deep[1].Path)
}
