package testutil

import (
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockReporter is a testify mock of ui.Reporter
type MockReporter struct {
	mock.Mock
}

// Info records an Info call
func (m *MockReporter) Info(msg string) {
	m.Called(msg)
}

// Error records an Error call
func (m *MockReporter) Error(msg string) {
	m.Called(msg)
}

// RecordingReporter keeps every notice it receives
type RecordingReporter struct {
	mu     sync.Mutex
	Infos  []string
	Errors []string

	// OnError, when set, is called for every error notice
	OnError func(msg string)
}

// Info records an informational notice
func (r *RecordingReporter) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

// Error records an error notice
func (r *RecordingReporter) Error(msg string) {
	r.mu.Lock()
	r.Errors = append(r.Errors, msg)
	onError := r.OnError
	r.mu.Unlock()
	if onError != nil {
		onError(msg)
	}
}

// ErrorCount returns the number of error notices received
func (r *RecordingReporter) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors)
}

// HasError reports whether any error notice contains substr
func (r *RecordingReporter) HasError(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.Errors {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
