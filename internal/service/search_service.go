package service

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"devdesk-server/internal/domain"

	"github.com/sirupsen/logrus"
)

// snippetRadius is the number of characters kept on each side of a content match.
const snippetRadius = 50

type SearchService struct {
	defaultRoot  string
	extensions   map[string]struct{}
	maxFileBytes int64
	logger       logrus.FieldLogger
}

func NewSearchService(defaultRoot string, extensions []string, maxFileBytes int64, logger logrus.FieldLogger) *SearchService {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &SearchService{
		defaultRoot:  defaultRoot,
		extensions:   exts,
		maxFileBytes: maxFileBytes,
		logger:       logger.WithField("component", "search"),
	}
}

// ResolveRoot returns folderPath when it names an existing directory and the
// configured search root otherwise.
func (s *SearchService) ResolveRoot(folderPath string) string {
	if folderPath != "" {
		if info, err := os.Stat(folderPath); err == nil && info.IsDir() {
			return folderPath
		}
	}
	return s.defaultRoot
}

// Search matches query against file names and contents below root. Results
// follow traversal order; a file can contribute a filename and a content match.
func (s *SearchService) Search(ctx context.Context, query, root string, recursive bool) ([]domain.SearchMatch, error) {
	results := []domain.SearchMatch{}
	if query == "" {
		return results, nil
	}
	needle := strings.ToLower(query)

	visit := func(path, name string) {
		if !s.allowed(name) {
			return
		}
		content, ok := s.readText(path)
		if !ok {
			return
		}

		if strings.Contains(strings.ToLower(name), needle) {
			results = append(results, domain.SearchMatch{
				File:      name,
				Path:      path,
				MatchType: domain.MatchTypeFilename,
				Snippet:   "",
			})
		}
		if snippet, found := Snippet(content, query, snippetRadius); found {
			results = append(results, domain.SearchMatch{
				File:      name,
				Path:      path,
				MatchType: domain.MatchTypeContent,
				Snippet:   snippet,
			})
		}
	}

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			s.logger.WithError(err).WithField("root", root).Warn("search root unreadable")
			return results, nil
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			path := filepath.Join(root, entry.Name())
			if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
				continue
			}
			visit(path, entry.Name())
		}
		return results, nil
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under the root as given.
	walkRoot := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		walkRoot = resolved
	}

	err := filepath.WalkDir(walkRoot, func(walked string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && walked != walkRoot {
				return fs.SkipDir
			}
			return nil
		}
		path := walked
		if walkRoot != root {
			if rel, err := filepath.Rel(walkRoot, walked); err == nil {
				path = filepath.Join(root, rel)
			}
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		visit(path, d.Name())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (s *SearchService) allowed(name string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// readText loads a file as UTF-8, dropping bytes that do not decode.
func (s *SearchService) readText(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if s.maxFileBytes > 0 && info.Size() > s.maxFileBytes {
		s.logger.WithField("path", path).Debug("skipping oversized file")
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Debug("skipping unreadable file")
		return "", false
	}
	if utf8.Valid(data) {
		return string(data), true
	}
	return strings.ToValidUTF8(string(data), ""), true
}

// Snippet locates the first case-insensitive occurrence of query in content
// and returns up to radius characters on each side of it, with line breaks
// flattened to spaces and wrapped in "..." markers.
func Snippet(content, query string, radius int) (string, bool) {
	if query == "" {
		return "", false
	}

	runes := []rune(content)
	needle := []rune(query)
	idx := indexFold(runes, needle)
	if idx < 0 {
		return "", false
	}

	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + radius
	if end > len(runes) {
		end = len(runes)
	}

	window := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(string(runes[start:end]))
	return "..." + window + "...", true
}

// indexFold is a rune-wise case-insensitive search; indexes stay aligned with
// the input runes because each rune maps to exactly one lowered rune.
func indexFold(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	lowerNeedle := make([]rune, len(needle))
	for i, r := range needle {
		lowerNeedle[i] = unicode.ToLower(r)
	}

outer:
	for i := 0; i+len(lowerNeedle) <= len(haystack); i++ {
		for j, r := range lowerNeedle {
			if unicode.ToLower(haystack[i+j]) != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
