package service

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"devdesk-server/internal/domain"
)

type BrowseService struct {
	defaultRoot string
}

func NewBrowseService(defaultRoot string) *BrowseService {
	return &BrowseService{
		defaultRoot: defaultRoot,
	}
}

// Browse lists the visible subdirectories of path. Missing paths fall back to
// the default root and then to the working directory.
func (s *BrowseService) Browse(path string) (*domain.BrowseResult, error) {
	start := path
	if start == "" {
		start = s.defaultRoot
	}

	if !exists(start) {
		start = s.defaultRoot
		if !exists(start) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			start = wd
		}
	}

	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}

	folders := []string{}
	if entries, err := os.ReadDir(abs); err == nil {
		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") || !isDir(filepath.Join(abs, entry.Name()), entry) {
				continue
			}
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)

	result := &domain.BrowseResult{
		CurrentPath: abs,
		Folders:     folders,
	}
	if parent := filepath.Dir(abs); parent != abs {
		result.ParentPath = &parent
	}
	return result, nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// isDir follows symlinks the way a directory picker expects.
func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
