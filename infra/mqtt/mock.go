package mqtt

import (
	"fmt"
	"sync"

	"github.com/ouestbat/chantier/core/plan"
)

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Published map[string][]plan.ScheduledItem
	Fail      bool
	mu        sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Published: make(map[string][]plan.ScheduledItem)}
}

// PublishSchedule records the schedule or returns an error if configured to fail.
func (m *MockPublisher) PublishSchedule(runID string, items []plan.ScheduledItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Published[runID] = items
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}
