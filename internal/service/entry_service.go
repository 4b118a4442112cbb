package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EntryDefaults fills optional entry fields that were left empty.
type EntryDefaults struct {
	AppName string
	User    string
}

type EntryService struct {
	repo          repository.EntryRepository
	defaults      EntryDefaults
	lazyMigration bool
	logger        logrus.FieldLogger
	now           func() time.Time

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

func NewEntryService(repo repository.EntryRepository, defaults EntryDefaults, lazyMigration bool, logger logrus.FieldLogger) *EntryService {
	return &EntryService{
		repo:          repo,
		defaults:      defaults,
		lazyMigration: lazyMigration,
		logger:        logger.WithField("component", "entries"),
		now:           time.Now,
	}
}

func (s *EntryService) timestamp() string {
	return s.now().Format(time.RFC3339Nano)
}

// List never fails: unreadable storage is reported as an empty knowledge base.
func (s *EntryService) List(ctx context.Context) ([]*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("entries unreadable, serving empty list")
		return []*domain.Entry{}, nil
	}

	if changed := s.backfill(entries); changed > 0 && s.lazyMigration {
		if err := s.repo.Save(ctx, entries); err != nil {
			s.logger.WithError(err).Error("failed to persist backfilled entries")
		} else {
			s.logger.WithField("count", changed).Info("backfilled legacy entries")
		}
	}

	return entries, nil
}

// Migrate fills missing fields on legacy records and persists the document
// only when something changed. Running it twice leaves storage untouched.
func (s *EntryService) Migrate(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadForWrite(ctx)
	if err != nil {
		return 0, err
	}

	changed := s.backfill(entries)
	if changed == 0 {
		return 0, nil
	}

	if err := s.repo.Save(ctx, entries); err != nil {
		return 0, err
	}
	s.logger.WithField("count", changed).Info("migrated legacy entries")
	return changed, nil
}

func (s *EntryService) Create(ctx context.Context, req *domain.CreateEntryRequest) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}

	s.backfill(entries)
	if findProblem(entries, req.Problem, nil) != nil {
		return nil, ErrDuplicateProblem
	}

	now := s.timestamp()
	createdBy := firstNonEmpty(req.CreatedBy, s.defaults.User)
	entry := &domain.Entry{
		ID:             uuid.New().String(),
		Problem:        req.Problem,
		Solution:       req.Solution,
		AppName:        firstNonEmpty(req.AppName, s.defaults.AppName),
		CreatedBy:      createdBy,
		LastUpdatedBy:  firstNonEmpty(req.LastUpdatedBy, createdBy),
		CreationDate:   now,
		LastUpdateDate: now,
	}

	entries = append(entries, entry)
	if err := s.repo.Save(ctx, entries); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *EntryService) Update(ctx context.Context, id string, req *domain.UpdateEntryRequest) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	s.backfill(entries)

	var entry *domain.Entry
	for _, e := range entries {
		if e.ID == id {
			entry = e
			break
		}
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	if !strings.EqualFold(entry.Problem, req.Problem) && findProblem(entries, req.Problem, entry) != nil {
		return nil, ErrDuplicateProblem
	}

	entry.Problem = req.Problem
	entry.Solution = req.Solution
	if req.AppName != "" {
		entry.AppName = req.AppName
	}
	entry.LastUpdatedBy = firstNonEmpty(req.LastUpdatedBy, s.defaults.User)
	entry.LastUpdateDate = s.timestamp()

	if err := s.repo.Save(ctx, entries); err != nil {
		return nil, err
	}

	return entry, nil
}

// loadForWrite treats a missing document as empty but refuses to continue
// from one it could not decode, so a write never replaces unparsed data.
func (s *EntryService) loadForWrite(ctx context.Context) ([]*domain.Entry, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentCorrupt) {
			return nil, ErrStorageCorrupt
		}
		return nil, err
	}
	return entries, nil
}

// backfill assigns defaults to every missing field and reports how many
// records were touched.
func (s *EntryService) backfill(entries []*domain.Entry) int {
	changed := 0
	now := s.timestamp()
	for _, e := range entries {
		touched := false
		fill := func(field *string, value string) {
			if *field == "" {
				*field = value
				touched = true
			}
		}

		fill(&e.ID, uuid.New().String())
		fill(&e.AppName, s.defaults.AppName)
		fill(&e.CreatedBy, s.defaults.User)
		fill(&e.LastUpdatedBy, e.CreatedBy)
		fill(&e.CreationDate, now)
		fill(&e.LastUpdateDate, e.CreationDate)

		if touched {
			changed++
		}
	}
	return changed
}

// findProblem returns the first entry other than exclude whose problem
// matches case-insensitively.
func findProblem(entries []*domain.Entry, problem string, exclude *domain.Entry) *domain.Entry {
	for _, e := range entries {
		if e != exclude && strings.EqualFold(e.Problem, problem) {
			return e
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
