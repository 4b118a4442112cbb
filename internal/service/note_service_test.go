package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_SaveUsesTitleAndTimestamp(t *testing.T) {
	dir := t.TempDir()
	service := NewNoteService(repository.NewTextRepository(dir), 30, testLogger())
	service.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.Local) }

	filename, err := service.Save(&domain.CreateNoteRequest{Title: "Team sync/notes", Content: "agenda"})
	require.NoError(t, err)
	assert.Equal(t, "Team_sync_notes_20240309140506.txt", filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Equal(t, "agenda", string(data))
}

func TestNoteService_SaveRequiresTitle(t *testing.T) {
	service := NewNoteService(repository.NewTextRepository(t.TempDir()), 30, testLogger())

	_, err := service.Save(&domain.CreateNoteRequest{Title: "   ", Content: "x"})
	assert.True(t, errors.Is(err, ErrInvalidTitle))
}

func TestNoteService_RecentFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	service := NewNoteService(repository.NewTextRepository(dir), 30, testLogger())

	files := map[string]time.Time{
		"Old_note_20200101000000.txt":   now.Add(-45 * 24 * time.Hour),
		"Fresh_idea_20240101000000.txt": now.Add(-1 * time.Hour),
		"Last_week_20240102000000.txt":  now.Add(-7 * 24 * time.Hour),
		"ignored_20240102000000.md":     now,
	}
	for name, mtime := range files {
		path := filepath.Join(dir, name)
		writeFile(t, path, name)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	notes, err := service.Recent()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Fresh idea", notes[0].Title)
	assert.Equal(t, "Fresh_idea_20240101000000.txt", notes[0].Content)
	assert.Equal(t, "Last week", notes[1].Title)
}

func TestNoteService_RecentMissingDirectory(t *testing.T) {
	service := NewNoteService(repository.NewTextRepository(filepath.Join(t.TempDir(), "none")), 30, testLogger())

	notes, err := service.Recent()
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteTitle(t *testing.T) {
	assert.Equal(t, "My daily note", noteTitle("My_daily_note_20240101120000.txt"))
	assert.Equal(t, "plain.txt", noteTitle("plain.txt"))
}
