package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Entry is a problem/solution record of the knowledge base. Timestamps are
// kept as strings so legacy ISO-8601 values round-trip unchanged.
type Entry struct {
	ID             string `json:"id"`
	Problem        string `json:"problem"`
	Solution       string `json:"solution"`
	AppName        string `json:"app_name"`
	CreatedBy      string `json:"created_by"`
	LastUpdatedBy  string `json:"last_updated_by"`
	CreationDate   string `json:"creation_date"`
	LastUpdateDate string `json:"last_update_date"`
}

// UnmarshalJSON accepts hand-edited records whose fields are not strings:
// numbers and booleans keep their literal text, null becomes empty, and
// nested values are kept as compact JSON. Unknown fields are ignored.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*e = Entry{
		ID:             textField(fields["id"]),
		Problem:        textField(fields["problem"]),
		Solution:       textField(fields["solution"]),
		AppName:        textField(fields["app_name"]),
		CreatedBy:      textField(fields["created_by"]),
		LastUpdatedBy:  textField(fields["last_updated_by"]),
		CreationDate:   textField(fields["creation_date"]),
		LastUpdateDate: textField(fields["last_update_date"]),
	}
	return nil
}

func textField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return compact.String()
}

type CreateEntryRequest struct {
	Problem       string `json:"problem" validate:"required,maxwords=50"`
	Solution      string `json:"solution" validate:"required,maxwords=200"`
	AppName       string `json:"app_name"`
	CreatedBy     string `json:"created_by"`
	LastUpdatedBy string `json:"last_updated_by"`
}

type UpdateEntryRequest struct {
	Problem       string `json:"problem" validate:"required,maxwords=50"`
	Solution      string `json:"solution" validate:"required,maxwords=200"`
	AppName       string `json:"app_name"`
	LastUpdatedBy string `json:"last_updated_by"`
}

type MigrationResponse struct {
	Migrated int `json:"migrated"`
}
