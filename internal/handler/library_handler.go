package handler

import (
	"net/http"

	"devdesk-server/internal/service"
	"devdesk-server/pkg/response"
)

type LibraryHandler struct {
	service *service.LibraryService
}

func NewLibraryHandler(service *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		service: service,
	}
}

func (h *LibraryHandler) Frequent(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Frequent())
}

func (h *LibraryHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.Templates()
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Success(w, templates)
}
