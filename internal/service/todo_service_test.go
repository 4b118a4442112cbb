package service

import (
	"errors"
	"testing"

	"devdesk-server/internal/domain"
)

type mockTodoRepo struct {
	list    *domain.TodoList
	loadErr error
}

func (m *mockTodoRepo) Load() (*domain.TodoList, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.list == nil {
		empty := &domain.TodoList{}
		empty.Normalize()
		return empty, nil
	}
	return m.list, nil
}

func (m *mockTodoRepo) Save(list *domain.TodoList) error {
	list.Normalize()
	m.list = list
	return nil
}

type mockLinesRepo struct {
	lines []string
	err   error
}

func (m *mockLinesRepo) List() ([]string, error) {
	return m.lines, m.err
}

func TestTodoService_SaveAndGet(t *testing.T) {
	repo := &mockTodoRepo{}
	service := NewTodoService(repo, &mockLinesRepo{}, testLogger())

	err := service.Save(&domain.TodoList{
		CurrentDay: []domain.TodoItem{{ID: "1", Task: "write report", Duration: "1h"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	list := service.Get()
	if len(list.CurrentDay) != 1 || list.CurrentDay[0].Task != "write report" {
		t.Errorf("unexpected current day list: %+v", list.CurrentDay)
	}
	if list.NextDay == nil || list.Pending == nil {
		t.Error("expected empty lists instead of nil")
	}
}

func TestTodoService_GetAbsorbsErrors(t *testing.T) {
	service := NewTodoService(&mockTodoRepo{loadErr: errors.New("boom")}, &mockLinesRepo{}, testLogger())

	list := service.Get()
	if list.CurrentDay == nil || len(list.CurrentDay) != 0 {
		t.Errorf("expected empty list, got %+v", list)
	}
}

func TestTodoService_Masterlist(t *testing.T) {
	service := NewTodoService(&mockTodoRepo{}, &mockLinesRepo{lines: []string{"a", "b"}}, testLogger())
	if got := service.Masterlist(); len(got) != 2 {
		t.Errorf("expected 2 items, got %v", got)
	}

	service = NewTodoService(&mockTodoRepo{}, &mockLinesRepo{err: errors.New("denied")}, testLogger())
	if got := service.Masterlist(); got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}
