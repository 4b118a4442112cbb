package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/service"
	"devdesk-server/internal/validation"
	"devdesk-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type NoteHandler struct {
	service  *service.NoteService
	validate *validator.Validate
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: validation.New(),
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validation.Message(err))
		return
	}

	filename, err := h.service.Save(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTitle) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, domain.NoteSavedResponse{
		Message:  "Note saved successfully",
		Filename: filename,
	})
}

func (h *NoteHandler) Recent(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.Recent()
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, notes)
}
