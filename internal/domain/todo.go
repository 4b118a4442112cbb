package domain

type TodoItem struct {
	ID        string `json:"id" validate:"required"`
	Context   string `json:"context"`
	Task      string `json:"task"`
	Duration  string `json:"duration"`
	Completed bool   `json:"completed"`
}

// TodoList is persisted as a single JSON object.
type TodoList struct {
	CurrentDay []TodoItem `json:"current_day" validate:"dive"`
	NextDay    []TodoItem `json:"next_day" validate:"dive"`
	Pending    []TodoItem `json:"pending" validate:"dive"`
}

// Normalize replaces nil lists with empty ones so they encode as [].
func (l *TodoList) Normalize() {
	if l.CurrentDay == nil {
		l.CurrentDay = []TodoItem{}
	}
	if l.NextDay == nil {
		l.NextDay = []TodoItem{}
	}
	if l.Pending == nil {
		l.Pending = []TodoItem{}
	}
}
