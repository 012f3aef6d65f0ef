package mocks

import (
	"context"
	"sync"

	"learnhub/domain/notification"
)

// MockEmailSender Mock implementation of the outbound mail boundary
type MockEmailSender struct {
	sent []notification.EmailRequest
	mu   sync.Mutex

	FailNext error
}

// NewMockEmailSender Create Mock email sender
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (s *MockEmailSender) Send(ctx context.Context, req notification.EmailRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}
	s.sent = append(s.sent, req)
	return nil
}

// Sent the requests delivered so far
func (s *MockEmailSender) Sent() []notification.EmailRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.EmailRequest(nil), s.sent...)
}
