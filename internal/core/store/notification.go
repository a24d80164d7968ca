package store

import (
	"sync"
	"time"

	"github.com/NahuFed/storefront/internal/core/domain"
)

// NotificationStore holds transient UI messages in insertion order. Ids
// are timestamp-derived and strictly increasing. Expiry is the presenter's
// job: the store hands out DurationMs and runs no timer of its own.
type NotificationStore struct {
	mu            sync.Mutex
	notifications []domain.Notification
	lastID        int64
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

// Add appends a notification and returns its id. Empty severity defaults
// to success, non-positive durations to the default duration.
func (s *NotificationStore) Add(message, severity string, durationMs int) int64 {
	if severity == "" {
		severity = domain.SeveritySuccess
	}
	if durationMs <= 0 {
		durationMs = domain.DefaultNotificationDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	s.notifications = append(s.notifications, domain.Notification{
		ID:         id,
		Message:    message,
		Severity:   severity,
		DurationMs: durationMs,
	})
	return id
}

// Remove deletes the notification with the given id. Removing an absent id
// is a no-op.
func (s *NotificationStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearAll empties the collection.
func (s *NotificationStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

// List returns a copy of the pending notifications, oldest first.
func (s *NotificationStore) List() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
