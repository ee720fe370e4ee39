package mocks

import (
	"context"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// SlotRepository is a mock for repository.SlotRepository.
type SlotRepository struct {
	mock.Mock
}

func (m *SlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if value, ok := args.Get(0).([]byte); ok {
		return value, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SlotRepository) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *SlotRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
