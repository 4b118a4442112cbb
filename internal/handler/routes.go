package handler

import (
	"github.com/gorilla/mux"
)

type Handlers struct {
	Entries *EntryHandler
	Todos   *TodoHandler
	Notes   *NoteHandler
	Diary   *DiaryHandler
	Search  *SearchHandler
	Library *LibraryHandler
}

// Register mounts every API route on api, which is expected to be the
// /api subrouter.
func (h *Handlers) Register(api *mux.Router) {
	api.HandleFunc("/entries", h.Entries.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/entries", h.Entries.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/entries/migrate", h.Entries.Migrate).Methods("POST", "OPTIONS")
	api.HandleFunc("/entries/{id}", h.Entries.Update).Methods("PUT", "OPTIONS")

	api.HandleFunc("/todos", h.Todos.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/todos", h.Todos.Save).Methods("POST", "OPTIONS")
	api.HandleFunc("/todos/masterlist", h.Todos.Masterlist).Methods("GET", "OPTIONS")

	api.HandleFunc("/notes", h.Notes.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/notes/recent", h.Notes.Recent).Methods("GET", "OPTIONS")

	api.HandleFunc("/search", h.Search.Search).Methods("GET", "OPTIONS")
	api.HandleFunc("/browse", h.Search.Browse).Methods("GET", "OPTIONS")

	api.HandleFunc("/frequent", h.Library.Frequent).Methods("GET", "OPTIONS")
	api.HandleFunc("/templates", h.Library.Templates).Methods("GET", "OPTIONS")

	api.HandleFunc("/diary/month/{year_month}", h.Diary.Month).Methods("GET", "OPTIONS")
	api.HandleFunc("/diary", h.Diary.Save).Methods("POST", "OPTIONS")
	api.HandleFunc("/diary/{date}", h.Diary.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/diary/{date}", h.Diary.Save).Methods("POST", "OPTIONS")
}
