package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"content-hub/internal/domain"
	"content-hub/internal/service"
	"content-hub/internal/store"
)

// MockContentService is a mock implementation of service.ContentServiceInterface.
type MockContentService struct {
	mock.Mock
}

// NewMockContentService creates a MockContentService whose expectations are
// asserted when the test ends.
func NewMockContentService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContentService {
	m := &MockContentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockContentService) Load(ctx context.Context, trigger string) error {
	return m.Called(ctx, trigger).Error(0)
}

func (m *MockContentService) Submit(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ContentItem), args.Error(1)
}

func (m *MockContentService) UpdateItem(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.ContentItem), args.Error(1)
}

func (m *MockContentService) Browse(filter domain.Filter, query string) (service.ContentView, error) {
	args := m.Called(filter, query)
	return args.Get(0).(service.ContentView), args.Error(1)
}

func (m *MockContentService) View() service.ContentView {
	return m.Called().Get(0).(service.ContentView)
}

func (m *MockContentService) Counts() store.Counts {
	return m.Called().Get(0).(store.Counts)
}

func (m *MockContentService) Guides() []domain.ContentItem {
	items, _ := m.Called().Get(0).([]domain.ContentItem)
	return items
}

func (m *MockContentService) Guide(slug string) (domain.ContentItem, error) {
	args := m.Called(slug)
	return args.Get(0).(domain.ContentItem), args.Error(1)
}

func (m *MockContentService) Categories() []string {
	categories, _ := m.Called().Get(0).([]string)
	return categories
}

func (m *MockContentService) Snapshot() store.State {
	return m.Called().Get(0).(store.State)
}

// MockPreferencesService is a mock implementation of service.PreferencesServiceInterface.
type MockPreferencesService struct {
	mock.Mock
}

// NewMockPreferencesService creates a MockPreferencesService whose expectations
// are asserted when the test ends.
func NewMockPreferencesService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPreferencesService {
	m := &MockPreferencesService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPreferencesService) Get() domain.Preferences {
	return m.Called().Get(0).(domain.Preferences)
}

func (m *MockPreferencesService) Update(patch domain.PreferencesPatch) (domain.Preferences, error) {
	args := m.Called(patch)
	return args.Get(0).(domain.Preferences), args.Error(1)
}

func (m *MockPreferencesService) ToggleTheme() domain.Preferences {
	return m.Called().Get(0).(domain.Preferences)
}

var (
	_ service.ContentServiceInterface     = (*MockContentService)(nil)
	_ service.PreferencesServiceInterface = (*MockPreferencesService)(nil)
)

// MockTransferService is a mock implementation of service.TransferServiceInterface.
type MockTransferService struct {
	mock.Mock
}

// NewMockTransferService creates a MockTransferService whose expectations
// are asserted when the test ends.
func NewMockTransferService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransferService {
	m := &MockTransferService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransferService) Export(ctx context.Context, format domain.TransferFormat, w io.Writer) (int, error) {
	args := m.Called(ctx, format, w)
	return args.Int(0), args.Error(1)
}

func (m *MockTransferService) Import(ctx context.Context, format domain.TransferFormat, r io.Reader) (domain.ImportResult, error) {
	args := m.Called(ctx, format, r)
	return args.Get(0).(domain.ImportResult), args.Error(1)
}

var _ service.TransferServiceInterface = (*MockTransferService)(nil)
