package handler

import (
	"encoding/json"
	"net/http"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/service"
	"devdesk-server/internal/validation"
	"devdesk-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type TodoHandler struct {
	service  *service.TodoService
	validate *validator.Validate
}

func NewTodoHandler(service *service.TodoService) *TodoHandler {
	return &TodoHandler{
		service:  service,
		validate: validation.New(),
	}
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Get())
}

func (h *TodoHandler) Save(w http.ResponseWriter, r *http.Request) {
	var list domain.TodoList
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(list); err != nil {
		response.BadRequest(w, validation.Message(err))
		return
	}

	if err := h.service.Save(&list); err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, domain.MessageResponse{Message: "Todos saved successfully"})
}

func (h *TodoHandler) Masterlist(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Masterlist())
}
