package service

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"devdesk-server/internal/domain"
	"devdesk-server/internal/repository"
)

const (
	diaryDateLayout  = "2006-01-02"
	diaryMonthLayout = "2006-01"
)

// DiaryService keeps one text file per day under a YYYY-MM folder.
type DiaryService struct {
	repo repository.TextRepository
}

func NewDiaryService(repo repository.TextRepository) *DiaryService {
	return &DiaryService{
		repo: repo,
	}
}

func (s *DiaryService) Get(date string) (*domain.DiaryEntry, error) {
	if _, err := time.Parse(diaryDateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	content, err := s.repo.Read(date[:7], date+".txt")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.DiaryEntry{Date: date, Content: ""}, nil
		}
		return nil, err
	}
	return &domain.DiaryEntry{Date: date, Content: content}, nil
}

func (s *DiaryService) Save(entry *domain.DiaryEntry) error {
	if _, err := time.Parse(diaryDateLayout, entry.Date); err != nil {
		return ErrInvalidDate
	}
	return s.repo.Write(entry.Date[:7], entry.Date+".txt", entry.Content)
}

// Month lists the dates of the given YYYY-MM that have an entry.
func (s *DiaryService) Month(yearMonth string) ([]string, error) {
	if _, err := time.Parse(diaryMonthLayout, yearMonth); err != nil {
		return nil, ErrInvalidMonth
	}

	files, err := s.repo.List(yearMonth, ".txt")
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(files))
	for _, f := range files {
		dates = append(dates, strings.TrimSuffix(f.Name, ".txt"))
	}
	return dates, nil
}
