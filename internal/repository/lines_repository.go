package repository

import (
	"errors"
	"fmt"
	"io/fs"

	"devdesk-server/pkg/fileutil"
)

// LinesRepository exposes a plain text file as a list of non-empty lines.
type LinesRepository interface {
	List() ([]string, error)
}

type linesRepository struct {
	path string
}

func NewLinesRepository(path string) LinesRepository {
	return &linesRepository{
		path: path,
	}
}

func (r *linesRepository) List() ([]string, error) {
	lines, err := fileutil.ReadLines(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return lines, nil
}
