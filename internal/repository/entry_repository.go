package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"devdesk-server/internal/domain"
	"devdesk-server/pkg/fileutil"
)

// ErrDocumentCorrupt is returned when a stored document exists but cannot be decoded.
var ErrDocumentCorrupt = errors.New("stored document is corrupt")

// EntryRepository persists the whole knowledge base as one ordered document.
// Load returns an empty slice when nothing has been stored yet.
type EntryRepository interface {
	Load(ctx context.Context) ([]*domain.Entry, error)
	Save(ctx context.Context, entries []*domain.Entry) error
}

type entryFileRepository struct {
	path string
}

func NewEntryFileRepository(path string) EntryRepository {
	return &entryFileRepository{
		path: path,
	}
}

func (r *entryFileRepository) Load(ctx context.Context) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	if err := fileutil.ReadJSON(r.path, &entries); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.Entry{}, nil
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read entries: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentCorrupt, r.path, err)
	}
	return compactEntries(entries), nil
}

func (r *entryFileRepository) Save(ctx context.Context, entries []*domain.Entry) error {
	if entries == nil {
		entries = []*domain.Entry{}
	}
	if err := fileutil.WriteJSON(r.path, entries); err != nil {
		return fmt.Errorf("failed to save entries: %w", err)
	}
	return nil
}

// compactEntries drops null array elements left behind by hand edits.
func compactEntries(entries []*domain.Entry) []*domain.Entry {
	out := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
