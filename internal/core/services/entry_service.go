package services

import (
	"context"
	"errors"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

type EntryService struct {
	store *Store
}

func NewEntryService(store *Store) *EntryService {
	return &EntryService{
		store: store,
	}
}

type RecordTodayInput struct {
	Completed []bool
}

type RecordResult struct {
	Date      string `json:"date"`
	Completed []bool `json:"completed"`
}

// RecordToday writes today's completion flags. As with Setup, a storage
// failure still returns the recorded day together with the error.
func (s *EntryService) RecordToday(ctx context.Context, input RecordTodayInput) (*RecordResult, error) {
	date, snap, err := s.store.RecordToday(ctx, input.Completed)
	metrics.IncrementDayRecorded(outcome(err))
	if err != nil && !errors.Is(err, domain.ErrStorageUnavailable) {
		return nil, err
	}

	return &RecordResult{
		Date:      date,
		Completed: snap.Records[date],
	}, err
}

func (s *EntryService) List() domain.Records {
	return s.store.Snapshot().Records
}

// Today returns the flags recorded for the current date, if any.
func (s *EntryService) Today() (*RecordResult, bool) {
	date := domain.DateKey(s.store.Today())
	flags, ok := s.store.Snapshot().Records[date]
	if !ok {
		return nil, false
	}
	return &RecordResult{Date: date, Completed: flags}, true
}
