package service

import (
	"sync"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/repository"

	"github.com/sirupsen/logrus"
)

type TodoService struct {
	repo       repository.TodoRepository
	masterlist repository.LinesRepository
	logger     logrus.FieldLogger
	mu         sync.Mutex
}

func NewTodoService(repo repository.TodoRepository, masterlist repository.LinesRepository, logger logrus.FieldLogger) *TodoService {
	return &TodoService{
		repo:       repo,
		masterlist: masterlist,
		logger:     logger.WithField("component", "todos"),
	}
}

// Get returns the stored lists; unreadable storage yields three empty lists.
func (s *TodoService) Get() *domain.TodoList {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.Load()
	if err != nil {
		s.logger.WithError(err).Warn("todos unreadable, serving empty lists")
		empty := &domain.TodoList{}
		empty.Normalize()
		return empty
	}
	return list
}

func (s *TodoService) Save(list *domain.TodoList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Save(list)
}

func (s *TodoService) Masterlist() []string {
	lines, err := s.masterlist.List()
	if err != nil {
		s.logger.WithError(err).Warn("masterlist unreadable")
		return []string{}
	}
	return lines
}
