package domain

type MessageResponse struct {
	Message string `json:"message"`
}
