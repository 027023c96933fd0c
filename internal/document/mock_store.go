package document

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Current(ctx context.Context) (Document, error) {
	args := m.Called(ctx)
	return args.Get(0).(Document), args.Error(1)
}

func (m *MockStore) Replace(ctx context.Context, doc Document) (Document, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(Document), args.Error(1)
}
