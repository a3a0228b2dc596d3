package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain/mocks"
)

func newActivity(repo domain.ViewRepository) *ActivityUsecase {
	uc := NewActivityUsecase(repo, nil, 0, logger.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestActivityUsecase_LogView(t *testing.T) {
	t.Run("anonymous visitor", func(t *testing.T) {
		repo := new(mocks.MockViewRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.PropertyView) bool {
			return v.PropertyID == "p1" &&
				v.PropertyTitle == "Sea View Villa" &&
				v.UserName == domain.AnonymousVisitor &&
				v.UserID == "" &&
				v.ViewedAt.Equal(fixedNow)
		})).Return("v1", nil).Once()

		newActivity(repo).LogView(context.Background(), ViewInput{PropertyID: "p1", PropertyTitle: "Sea View Villa"})
		repo.AssertExpectations(t)
	})
	t.Run("known visitor", func(t *testing.T) {
		repo := new(mocks.MockViewRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.PropertyView) bool {
			return v.UserID == "u-7" && v.UserEmail == "asha@example.com" && v.UserName == "Asha"
		})).Return("v2", nil).Once()

		newActivity(repo).LogView(context.Background(), ViewInput{PropertyID: "p1", UserID: "u-7", UserEmail: "asha@example.com", UserName: " Asha "})
		repo.AssertExpectations(t)
	})
	t.Run("store failure is swallowed", func(t *testing.T) {
		repo := new(mocks.MockViewRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return("", errors.New("mongo down")).Once()

		assert.NotPanics(t, func() {
			newActivity(repo).LogView(context.Background(), ViewInput{PropertyID: "p1"})
		})
		repo.AssertExpectations(t)
	})
	t.Run("cancelled request still logs", func(t *testing.T) {
		repo := new(mocks.MockViewRepository)
		repo.On("Create", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).Return("v3", nil).Once()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		newActivity(repo).LogView(ctx, ViewInput{PropertyID: "p1"})
		repo.AssertExpectations(t)
	})
	t.Run("missing property id is ignored", func(t *testing.T) {
		repo := new(mocks.MockViewRepository)
		newActivity(repo).LogView(context.Background(), ViewInput{PropertyID: " "})
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestActivityUsecase_Recent(t *testing.T) {
	views := []*domain.PropertyView{{ID: "v2"}, {ID: "v1"}}
	tests := []struct {
		name  string
		limit int64
		want  int64
	}{
		{"default", 0, 50},
		{"explicit", 10, 10},
		{"capped", 10000, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockViewRepository)
			repo.On("Recent", mock.Anything, tt.want).Return(views, nil).Once()

			got, err := newActivity(repo).Recent(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, views, got)
			repo.AssertExpectations(t)
		})
	}
}
