package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"devdesk-server/pkg/fileutil"
)

var ErrInvalidName = errors.New("invalid file name")

type TextFile struct {
	Name    string
	ModTime time.Time
}

// TextRepository stores free-form text files below a base directory. Folder
// and file names are single path elements; nested paths are rejected.
type TextRepository interface {
	List(folder, ext string) ([]TextFile, error)
	Read(folder, name string) (string, error)
	Write(folder, name, content string) error
}

type textRepository struct {
	baseDir string
}

func NewTextRepository(baseDir string) TextRepository {
	return &textRepository{
		baseDir: baseDir,
	}
}

func (r *textRepository) path(folder, name string) (string, error) {
	parts := []string{r.baseDir}
	for _, part := range []string{folder, name} {
		if part == "" {
			continue
		}
		if part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, part)
		}
		parts = append(parts, part)
	}
	return filepath.Join(parts...), nil
}

// List returns regular files in folder carrying ext, sorted by name. A
// missing folder yields an empty list.
func (r *textRepository) List(folder, ext string) ([]TextFile, error) {
	dir, err := r.path(folder, "")
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []TextFile{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	files := make([]TextFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, TextFile{Name: entry.Name(), ModTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func (r *textRepository) Read(folder, name string) (string, error) {
	path, err := r.path(folder, name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *textRepository) Write(folder, name, content string) error {
	path, err := r.path(folder, name)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
