package service

import (
	"strings"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LibraryService serves the read-only reference material: frequently used
// snippets and markdown templates.
type LibraryService struct {
	frequent  repository.LinesRepository
	templates repository.TextRepository
	logger    logrus.FieldLogger
}

func NewLibraryService(frequent repository.LinesRepository, templates repository.TextRepository, logger logrus.FieldLogger) *LibraryService {
	return &LibraryService{
		frequent:  frequent,
		templates: templates,
		logger:    logger.WithField("component", "library"),
	}
}

func (s *LibraryService) Frequent() []string {
	items, err := s.frequent.List()
	if err != nil {
		s.logger.WithError(err).Warn("frequent items unreadable")
		return []string{}
	}
	return items
}

func (s *LibraryService) Templates() ([]domain.Template, error) {
	files, err := s.templates.List("", ".md")
	if err != nil {
		return nil, err
	}

	caser := cases.Title(language.English)
	templates := make([]domain.Template, 0, len(files))
	for _, f := range files {
		content, err := s.templates.Read("", f.Name)
		if err != nil {
			return nil, err
		}
		name := strings.ReplaceAll(strings.TrimSuffix(f.Name, ".md"), "_", " ")
		templates = append(templates, domain.Template{
			Name:    caser.String(name),
			Content: content,
		})
	}
	return templates, nil
}
