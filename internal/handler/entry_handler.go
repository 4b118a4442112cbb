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
	"github.com/gorilla/mux"
)

type EntryHandler struct {
	service  *service.EntryService
	validate *validator.Validate
}

func NewEntryHandler(service *service.EntryService) *EntryHandler {
	return &EntryHandler{
		service:  service,
		validate: validation.New(),
	}
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, entries)
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validation.Message(err))
		return
	}

	entry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeEntryError(w, err)
		return
	}

	response.Success(w, entry)
}

func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["id"]
	if entryID == "" {
		response.BadRequest(w, "Entry ID is required")
		return
	}

	var req domain.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, validation.Message(err))
		return
	}

	entry, err := h.service.Update(r.Context(), entryID, &req)
	if err != nil {
		writeEntryError(w, err)
		return
	}

	response.Success(w, entry)
}

func (h *EntryHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	migrated, err := h.service.Migrate(r.Context())
	if err != nil {
		writeEntryError(w, err)
		return
	}

	response.Success(w, domain.MigrationResponse{Migrated: migrated})
}

func writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(w, "Entry not found")
	case errors.Is(err, service.ErrDuplicateProblem):
		response.BadRequest(w, "An entry with this problem already exists")
	default:
		response.InternalError(w, err.Error())
	}
}
