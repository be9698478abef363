// Package mocks provides testify mocks for the repository and service
// interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"content-hub/internal/domain"
)

// MockSource is a mock implementation of repository.Source and repository.Updater.
type MockSource struct {
	mock.Mock
}

// NewMockSource creates a MockSource whose expectations are asserted when the test ends.
func NewMockSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSource {
	m := &MockSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSource) Name() string {
	return "mock-source"
}

func (m *MockSource) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.ContentItem)
	return items, args.Error(1)
}

func (m *MockSource) Create(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ContentItem), args.Error(1)
}

func (m *MockSource) Update(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.ContentItem), args.Error(1)
}
