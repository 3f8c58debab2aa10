package testutil

import (
	"context"
	"sync"
)

// Notification is one recorded progress notification.
type Notification struct {
	Author string
	Phase  string
	Digest string
}

// RecordingSink records progress notifications. When Err is set every
// Notify call records and then returns it.
type RecordingSink struct {
	Err error

	mu     sync.Mutex
	events []Notification
}

// Notify records the notification.
func (s *RecordingSink) Notify(_ context.Context, author, phase, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Notification{Author: author, Phase: phase, Digest: digest})
	return s.Err
}

// Events returns a copy of the recorded notifications.
func (s *RecordingSink) Events() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.events...)
}
