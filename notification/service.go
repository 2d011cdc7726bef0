package notification

type NotificationService struct {
	repo *NotificationRepository
	hub  *Hub
}

func NewNotificationService(repo *NotificationRepository, hub *Hub) *NotificationService {
	return &NotificationService{
		repo: repo,
		hub:  hub,
	}
}

// Notify persists a notification and pushes it to any live subscribers.
func (s *NotificationService) Notify(memberID int, title, body string) error {
	n := &Notification{
		MemberID: memberID,
		Title:    title,
		Body:     body,
	}

	if err := s.repo.Create(n); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.Publish(memberID, n)
	}
	return nil
}

func (s *NotificationService) GetAll(filter NotificationFilter) ([]Notification, error) {
	return s.repo.GetAll(filter)
}

func (s *NotificationService) CountUnread(memberID int) (int, error) {
	return s.repo.CountUnread(memberID)
}

func (s *NotificationService) MarkRead(id int) error {
	return s.repo.MarkRead(id)
}

func (s *NotificationService) MarkAllRead(memberID int) error {
	return s.repo.MarkAllRead(memberID)
}

func (s *NotificationService) Delete(id int) error {
	return s.repo.Delete(id)
}
