package repository

import (
	"context"
	"fmt"
	"net/http"

	"devdesk-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

const entriesDocID = "knowledge:entries"

// entriesDoc keeps the whole knowledge base in one CouchDB document so the
// ordering and replace-on-write semantics match the file backend.
type entriesDoc struct {
	ID      string          `json:"_id"`
	Rev     string          `json:"_rev,omitempty"`
	Entries []*domain.Entry `json:"entries"`
}

type entryCouchRepository struct {
	client *kivik.Client
	dbName string
}

func NewEntryCouchRepository(client *kivik.Client, dbName string) EntryRepository {
	return &entryCouchRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *entryCouchRepository) fetch(ctx context.Context) (*entriesDoc, error) {
	db := r.client.DB(r.dbName)

	var doc entriesDoc
	row := db.Get(ctx, entriesDocID)
	if err := row.ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return &entriesDoc{ID: entriesDocID}, nil
		}
		return nil, fmt.Errorf("failed to fetch entries document: %w", err)
	}
	return &doc, nil
}

func (r *entryCouchRepository) Load(ctx context.Context) ([]*domain.Entry, error) {
	doc, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return compactEntries(doc.Entries), nil
}

func (r *entryCouchRepository) Save(ctx context.Context, entries []*domain.Entry) error {
	doc, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	if entries == nil {
		entries = []*domain.Entry{}
	}
	doc.ID = entriesDocID
	doc.Entries = entries

	db := r.client.DB(r.dbName)
	if _, err := db.Put(ctx, entriesDocID, doc); err != nil {
		return fmt.Errorf("failed to save entries document: %w", err)
	}
	return nil
}
