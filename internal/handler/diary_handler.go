package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/service"
	"devdesk-server/pkg/response"

	"github.com/gorilla/mux"
)

type DiaryHandler struct {
	service *service.DiaryService
}

func NewDiaryHandler(service *service.DiaryService) *DiaryHandler {
	return &DiaryHandler{
		service: service,
	}
}

func (h *DiaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Get(mux.Vars(r)["date"])
	if err != nil {
		writeDiaryError(w, err)
		return
	}

	response.Success(w, entry)
}

// Save accepts the date in the path, the body, or both (they must agree).
func (h *DiaryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var entry domain.DiaryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if date := mux.Vars(r)["date"]; date != "" {
		if entry.Date != "" && entry.Date != date {
			response.BadRequest(w, "Date in body does not match path")
			return
		}
		entry.Date = date
	}

	if err := h.service.Save(&entry); err != nil {
		writeDiaryError(w, err)
		return
	}

	response.Success(w, domain.MessageResponse{Message: "Diary entry saved successfully"})
}

func (h *DiaryHandler) Month(w http.ResponseWriter, r *http.Request) {
	dates, err := h.service.Month(mux.Vars(r)["year_month"])
	if err != nil {
		writeDiaryError(w, err)
		return
	}

	response.Success(w, dates)
}

func writeDiaryError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidDate) || errors.Is(err, service.ErrInvalidMonth) {
		response.BadRequest(w, err.Error())
		return
	}
	response.InternalError(w, err.Error())
}
