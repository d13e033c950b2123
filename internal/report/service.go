package report

import (
	"context"
	"log/slog"
)

// Repository runs the aggregate queries.
type Repository interface {
	RegistrationsPerEvent(ctx context.Context) ([]EventRegistrationCount, error)
	RegistrationsOverTime(ctx context.Context, days int) ([]DailyRegistrationCount, error)
	RegistrationsByDepartment(ctx context.Context) ([]DepartmentRegistrationCount, error)
	EventStatusCounts(ctx context.Context) ([]StatusCount, error)
}

// defaultWindowDays bounds the registrations-over-time series.
const defaultWindowDays = 30

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, lg *slog.Logger) *Service {
	if lg == nil {
		lg = slog.Default()
	}
	return &Service{repo: repo, logger: lg}
}

func (s *Service) RegistrationsPerEvent(ctx context.Context) ([]EventRegistrationCount, error) {
	return s.repo.RegistrationsPerEvent(ctx)
}

func (s *Service) RegistrationsOverTime(ctx context.Context, days int) ([]DailyRegistrationCount, error) {
	if days <= 0 {
		days = defaultWindowDays
	}
	return s.repo.RegistrationsOverTime(ctx, days)
}

func (s *Service) RegistrationsByDepartment(ctx context.Context) ([]DepartmentRegistrationCount, error) {
	return s.repo.RegistrationsByDepartment(ctx)
}

func (s *Service) EventStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return s.repo.EventStatusCounts(ctx)
}

// Dashboard assembles the full overview in one call.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	statuses, err := s.repo.EventStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	perEvent, err := s.repo.RegistrationsPerEvent(ctx)
	if err != nil {
		return nil, err
	}
	overTime, err := s.repo.RegistrationsOverTime(ctx, defaultWindowDays)
	if err != nil {
		return nil, err
	}
	byDept, err := s.repo.RegistrationsByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		EventStatusCounts:         statuses,
		RegistrationsPerEvent:     perEvent,
		RegistrationsOverTime:     overTime,
		RegistrationsByDepartment: byDept,
	}, nil
}
