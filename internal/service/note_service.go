package service

import (
	"sort"
	"strings"
	"time"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/repository"

	"github.com/sirupsen/logrus"
)

const noteTimestampLayout = "20060102150405"

type NoteService struct {
	repo         repository.TextRepository
	recentWindow time.Duration
	logger       logrus.FieldLogger
	now          func() time.Time
}

func NewNoteService(repo repository.TextRepository, recentDays int, logger logrus.FieldLogger) *NoteService {
	return &NoteService{
		repo:         repo,
		recentWindow: time.Duration(recentDays) * 24 * time.Hour,
		logger:       logger.WithField("component", "notes"),
		now:          time.Now,
	}
}

// Save stores the note as <Title_With_Underscores>_<YYYYMMDDHHMMSS>.txt.
func (s *NoteService) Save(req *domain.CreateNoteRequest) (string, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return "", ErrInvalidTitle
	}

	base := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(title)
	filename := base + "_" + s.now().Format(noteTimestampLayout) + ".txt"

	if err := s.repo.Write("", filename, req.Content); err != nil {
		return "", err
	}
	return filename, nil
}

// Recent returns notes modified within the configured window, newest first.
func (s *NoteService) Recent() ([]domain.RecentNote, error) {
	files, err := s.repo.List("", ".txt")
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-s.recentWindow)
	notes := []domain.RecentNote{}
	for _, f := range files {
		if f.ModTime.Before(cutoff) {
			continue
		}
		content, err := s.repo.Read("", f.Name)
		if err != nil {
			s.logger.WithError(err).WithField("file", f.Name).Debug("skipping unreadable note")
			continue
		}
		notes = append(notes, domain.RecentNote{
			Filename: f.Name,
			Title:    noteTitle(f.Name),
			Content:  content,
			Date:     f.ModTime,
		})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Date.After(notes[j].Date)
	})
	return notes, nil
}

// noteTitle recovers the title from a saved file name: everything before the
// last underscore, with underscores turned back into spaces.
func noteTitle(filename string) string {
	stem := filename
	if i := strings.LastIndex(filename, "_"); i >= 0 {
		stem = filename[:i]
	}
	return strings.ReplaceAll(stem, "_", " ")
}
