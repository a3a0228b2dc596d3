// Package mocks holds testify mocks of the domain ports.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

type MockPropertyRepository struct{ mock.Mock }

func (m *MockPropertyRepository) Create(ctx context.Context, p *domain.Property) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockQueryRepository struct{ mock.Mock }

func (m *MockQueryRepository) Create(ctx context.Context, q *domain.Query) (string, error) {
	args := m.Called(ctx, q)
	return args.String(0), args.Error(1)
}

func (m *MockQueryRepository) List(ctx context.Context) ([]*domain.Query, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Query), args.Error(1)
}

func (m *MockQueryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQueryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockViewRepository struct{ mock.Mock }

func (m *MockViewRepository) Create(ctx context.Context, v *domain.PropertyView) (string, error) {
	args := m.Called(ctx, v)
	return args.String(0), args.Error(1)
}

func (m *MockViewRepository) Recent(ctx context.Context, limit int64) ([]*domain.PropertyView, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PropertyView), args.Error(1)
}

func (m *MockViewRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockPropertyCache struct{ mock.Mock }

func (m *MockPropertyCache) GetAll(ctx context.Context) ([]*domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Property), args.Error(1)
}

func (m *MockPropertyCache) SetAll(ctx context.Context, properties []*domain.Property) error {
	args := m.Called(ctx, properties)
	return args.Error(0)
}

func (m *MockPropertyCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error) {
	args := m.Called(ctx, name, contentType, size, body)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockQueryNotifier struct{ mock.Mock }

func (m *MockQueryNotifier) NotifyNewQuery(ctx context.Context, q *domain.Query) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
