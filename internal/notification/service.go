package notification

import (
	"log/slog"
)

// Repository persists notifications and resolves recipient sets.
type Repository interface {
	Create(n *Notification) error
	ListByUser(userID int64) ([]*Notification, error)
	UnreadCount(userID int64) (int64, error)
	MarkRead(id, userID int64) error
	MarkAllRead(userID int64) error

	ListRegistrantIDs(eventID int64) ([]int64, error)
	ListEmployeeIDs() ([]int64, error)
}

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

func (s *Service) ListForUser(userID int64) ([]*Notification, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) UnreadCount(userID int64) (int64, error) {
	return s.repo.UnreadCount(userID)
}

func (s *Service) MarkRead(id, userID int64) error {
	return s.repo.MarkRead(id, userID)
}

func (s *Service) MarkAllRead(userID int64) error {
	return s.repo.MarkAllRead(userID)
}

// NotifyUser writes one notification row. Failures are reported to the
// caller, which decides whether they abort anything (they never do for
// fan-outs).
func (s *Service) NotifyUser(userID int64, ntype, message string, eventID *int64) error {
	n := &Notification{
		UserID:  userID,
		Type:    ntype,
		Message: message,
		EventID: eventID,
	}
	return s.repo.Create(n)
}

// NotifyRegistrants fans a message out to every user registered for the
// event. Per-recipient failures are logged and skipped.
func (s *Service) NotifyRegistrants(eventID int64, ntype, message string) error {
	ids, err := s.repo.ListRegistrantIDs(eventID)
	if err != nil {
		return err
	}
	s.fanOut(ids, ntype, message, &eventID)
	return nil
}

// NotifyEmployees fans a message out to every live employee.
func (s *Service) NotifyEmployees(eventID int64, ntype, message string) error {
	ids, err := s.repo.ListEmployeeIDs()
	if err != nil {
		return err
	}
	s.fanOut(ids, ntype, message, &eventID)
	return nil
}

func (s *Service) fanOut(userIDs []int64, ntype, message string, eventID *int64) {
	for _, id := range userIDs {
		if err := s.NotifyUser(id, ntype, message, eventID); err != nil {
			s.logger.Error("failed to notify user",
				"user_id", id,
				"type", ntype,
				"error", err)
		}
	}
	s.logger.Info("notifications fanned out", "type", ntype, "recipients", len(userIDs))
}
