package services

import (
	"petsupplies/internal/domain"
	"petsupplies/internal/repos"
)

type NotificationService struct {
	Notes *repos.NotificationRepo
}

func NewNotificationService(notes *repos.NotificationRepo) *NotificationService {
	return &NotificationService{Notes: notes}
}

func (s *NotificationService) ListForUser(p domain.Principal) ([]domain.Notification, error) {
	out, err := s.Notes.ListByUser(p.UserID)
	if err != nil {
		return nil, domain.PersistenceFailure(err)
	}
	return out, nil
}

// MarkRead flips the read flag on the caller's own notification. Ids
// belonging to other users report not found rather than forbidden so
// the endpoint does not leak which ids exist.
func (s *NotificationService) MarkRead(p domain.Principal, id int64) error {
	ok, err := s.Notes.MarkRead(id, p.UserID)
	if err != nil {
		return domain.PersistenceFailure(err)
	}
	if !ok {
		return domain.NotFound("notification not found")
	}
	return nil
}
