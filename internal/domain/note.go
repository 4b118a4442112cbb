package domain

import "time"

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type NoteSavedResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

type RecentNote struct {
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}
