package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/validator"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain/mocks"
)

type queryFixture struct {
	uc       *QueryUsecase
	repo     *mocks.MockQueryRepository
	storage  *mocks.MockImageStorage
	notifier *mocks.MockQueryNotifier
	pub      *mocks.MockEventPublisher
}

func newQueryFixture(t *testing.T) queryFixture {
	t.Helper()
	f := queryFixture{
		repo:     new(mocks.MockQueryRepository),
		storage:  new(mocks.MockImageStorage),
		notifier: new(mocks.MockQueryNotifier),
		pub:      new(mocks.MockEventPublisher),
	}
	log := logger.NewNop()
	photos := NewPhotoUsecase(f.storage, nil, 5<<20, 10, log)
	f.uc = NewQueryUsecase(f.repo, photos, f.notifier, f.pub, validator.New(), nil, "IN", log)
	f.uc.now = func() time.Time { return fixedNow }
	t.Cleanup(func() {
		f.uc.Wait()
		f.repo.AssertExpectations(t)
		f.storage.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
		f.pub.AssertExpectations(t)
	})
	return f
}

func validQuery() QueryInput {
	return QueryInput{
		Name:    "  Asha <b>Rao</b> ",
		Email:   " Asha@Example.com ",
		Phone:   "98765 43210",
		Message: "Is the <i>villa</i> still available?",
	}
}

func TestQueryUsecase_Submit(t *testing.T) {
	f := newQueryFixture(t)

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Query) bool {
		return q.Name == "Asha Rao" &&
			q.Email == "asha@example.com" &&
			q.Phone == "+919876543210" &&
			q.Message == "Is the villa still available?" &&
			q.CreatedAt.Equal(fixedNow) &&
			q.Image == ""
	})).Return("q-1", nil).Once()
	f.pub.On("Publish", mock.Anything, domain.SubjectQuerySubmitted, mock.MatchedBy(func(e domain.QueryEvent) bool {
		return e.QueryID == "q-1"
	})).Return(nil).Once()
	f.notifier.On("NotifyNewQuery", mock.Anything, mock.MatchedBy(func(q *domain.Query) bool {
		return q.ID == "q-1"
	})).Return(nil).Once()

	q, err := f.uc.Submit(context.Background(), validQuery(), nil)
	require.NoError(t, err)
	assert.Equal(t, "q-1", q.ID)
}

func TestQueryUsecase_Submit_WithImage(t *testing.T) {
	f := newQueryFixture(t)
	img := &ImageFile{Name: "plan.png", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("png"))}

	f.storage.On("Upload", mock.Anything, "plan.png", "image/png", int64(3), mock.Anything).Return("https://cdn/plan.png", nil).Once()
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(q *domain.Query) bool {
		return q.Image == "https://cdn/plan.png"
	})).Return("q-2", nil).Once()
	f.pub.On("Publish", mock.Anything, domain.SubjectQuerySubmitted, mock.Anything).Return(nil).Once()
	f.notifier.On("NotifyNewQuery", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	q, err := f.uc.Submit(context.Background(), validQuery(), img)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/plan.png", q.Image)
}

func TestQueryUsecase_Submit_StoreFailureRemovesImage(t *testing.T) {
	f := newQueryFixture(t)
	img := &ImageFile{Name: "plan.png", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("png"))}

	f.storage.On("Upload", mock.Anything, "plan.png", "image/png", int64(3), mock.Anything).Return("https://cdn/plan.png", nil).Once()
	f.repo.On("Create", mock.Anything, mock.Anything).Return("", errors.New("mongo down")).Once()
	f.storage.On("Delete", mock.Anything, "https://cdn/plan.png").Return(nil).Once()

	_, err := f.uc.Submit(context.Background(), validQuery(), img)
	assert.Error(t, err)
}

func TestQueryUsecase_Submit_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QueryInput)
	}{
		{"missing name", func(in *QueryInput) { in.Name = "" }},
		{"markup only name", func(in *QueryInput) { in.Name = "<b></b>" }},
		{"missing email", func(in *QueryInput) { in.Email = "" }},
		{"bad email", func(in *QueryInput) { in.Email = "asha@" }},
		{"missing phone", func(in *QueryInput) { in.Phone = "" }},
		{"bad phone", func(in *QueryInput) { in.Phone = "12345" }},
		{"missing message", func(in *QueryInput) { in.Message = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQueryFixture(t)
			in := validQuery()
			tt.mutate(&in)

			_, err := f.uc.Submit(context.Background(), in, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestQueryUsecase_ListAndDelete(t *testing.T) {
	f := newQueryFixture(t)
	queries := []*domain.Query{{ID: "q-2"}, {ID: "q-1"}}

	f.repo.On("List", mock.Anything).Return(queries, nil).Once()
	f.repo.On("Delete", mock.Anything, "q-1").Return(nil).Once()
	f.repo.On("Delete", mock.Anything, "nope").Return(domain.ErrNotFound).Once()

	got, err := f.uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, queries, got)

	require.NoError(t, f.uc.Delete(context.Background(), "q-1"))
	assert.ErrorIs(t, f.uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}

func TestQueryUsecase_Submit_WithoutNotifier(t *testing.T) {
	repo := new(mocks.MockQueryRepository)
	pub := new(mocks.MockEventPublisher)
	log := logger.NewNop()
	uc := NewQueryUsecase(repo, NewPhotoUsecase(new(mocks.MockImageStorage), nil, 1024, 1, log), nil, pub, validator.New(), nil, "IN", log)

	repo.On("Create", mock.Anything, mock.Anything).Return("q-9", nil).Once()
	pub.On("Publish", mock.Anything, domain.SubjectQuerySubmitted, mock.Anything).Return(nil).Once()

	_, err := uc.Submit(context.Background(), validQuery(), nil)
	require.NoError(t, err)
	uc.Wait()
	repo.AssertExpectations(t)
}
