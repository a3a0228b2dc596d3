package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain/mocks"
)

func TestDashboardUsecase_Stats(t *testing.T) {
	props := new(mocks.MockPropertyRepository)
	queries := new(mocks.MockQueryRepository)
	views := new(mocks.MockViewRepository)
	props.On("Count", mock.Anything).Return(int64(12), nil)
	queries.On("Count", mock.Anything).Return(int64(4), nil)
	views.On("Count", mock.Anything).Return(int64(230), nil)

	stats, err := NewDashboardUsecase(props, queries, views).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Properties: 12, Queries: 4, Views: 230}, stats)
}

func TestDashboardUsecase_StatsFailure(t *testing.T) {
	props := new(mocks.MockPropertyRepository)
	queries := new(mocks.MockQueryRepository)
	views := new(mocks.MockViewRepository)
	props.On("Count", mock.Anything).Return(int64(12), nil)
	queries.On("Count", mock.Anything).Return(int64(0), errors.New("mongo down"))
	views.On("Count", mock.Anything).Return(int64(230), nil)

	stats, err := NewDashboardUsecase(props, queries, views).Stats(context.Background())
	assert.Error(t, err)
	assert.Equal(t, domain.Stats{}, stats)
}
