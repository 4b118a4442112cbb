package repository

import (
	"errors"
	"fmt"
	"io/fs"

	"devdesk-server/internal/domain"
	"devdesk-server/pkg/fileutil"
)

type TodoRepository interface {
	Load() (*domain.TodoList, error)
	Save(list *domain.TodoList) error
}

type todoRepository struct {
	path string
}

func NewTodoRepository(path string) TodoRepository {
	return &todoRepository{
		path: path,
	}
}

func (r *todoRepository) Load() (*domain.TodoList, error) {
	var list domain.TodoList
	if err := fileutil.ReadJSON(r.path, &list); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			list.Normalize()
			return &list, nil
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read todos: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentCorrupt, r.path, err)
	}
	list.Normalize()
	return &list, nil
}

func (r *todoRepository) Save(list *domain.TodoList) error {
	list.Normalize()
	if err := fileutil.WriteJSON(r.path, list); err != nil {
		return fmt.Errorf("failed to save todos: %w", err)
	}
	return nil
}
