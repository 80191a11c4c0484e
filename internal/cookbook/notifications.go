package cookbook

import (
	"fmt"
	"slices"

	"cookbook-go/internal/model"
)

// Notifications returns the logged-in user's notifications, newest first.
func (s *CookbookService) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return nil
	}
	var out []model.Notification
	for _, n := range s.notifications {
		if n.UserID == me.ID {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Notification) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

// UnreadNotificationCount counts the logged-in user's unread notifications.
func (s *CookbookService) UnreadNotificationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return 0
	}
	count := 0
	for _, n := range s.notifications {
		if n.UserID == me.ID && !n.Read {
			count++
		}
	}
	return count
}

// MarkNotificationRead marks one of the logged-in user's notifications as read.
func (s *CookbookService) MarkNotificationRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(s.notifications, func(n model.Notification) bool {
		return n.ID == id && n.UserID == me.ID
	})
	if i < 0 {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	if s.notifications[i].Read {
		return nil
	}

	next := slices.Clone(s.notifications)
	next[i].Read = true
	return s.saveNotifications(next)
}

// ClearAllNotifications deletes every notification of the logged-in user.
func (s *CookbookService) ClearAllNotifications() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, err := s.sessionUser()
	if err != nil {
		return err
	}
	next := slices.DeleteFunc(slices.Clone(s.notifications), func(n model.Notification) bool {
		return n.UserID == me.ID
	})
	if err := s.saveNotifications(next); err != nil {
		return err
	}
	s.logger.Info("notifications cleared", "user_id", me.ID)
	return nil
}

func (s *CookbookService) saveNotifications(next []model.Notification) error {
	if err := write(s.store, map[string]any{KeyNotifications: next}); err != nil {
		s.logger.Error("saving notifications", "error", err)
		return fmt.Errorf("saving notifications: %w", err)
	}
	s.notifications = next
	return nil
}
