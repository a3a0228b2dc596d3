package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain/mocks"
)

func TestPhotoUsecase_Upload_KeepsInputOrder(t *testing.T) {
	storage := new(mocks.MockImageStorage)
	uc := NewPhotoUsecase(storage, metrics.NewManager("test"), 1024, 10, logger.NewNop())

	files := []ImageFile{
		{Name: "a.png", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("aaa"))},
		{Name: "b.webp", ContentType: "image/webp; charset=binary", Size: 3, Body: bytes.NewReader([]byte("bbb"))},
		{Name: "c.gif", ContentType: "IMAGE/GIF", Size: 3, Body: bytes.NewReader([]byte("ccc"))},
	}
	storage.On("Upload", mock.Anything, "a.png", "image/png", int64(3), mock.Anything).Return("https://cdn/a", nil).Once()
	storage.On("Upload", mock.Anything, "b.webp", "image/webp", int64(3), mock.Anything).Return("https://cdn/b", nil).Once()
	storage.On("Upload", mock.Anything, "c.gif", "image/gif", int64(3), mock.Anything).Return("https://cdn/c", nil).Once()

	urls, err := uc.Upload(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a", "https://cdn/b", "https://cdn/c"}, urls)
	storage.AssertExpectations(t)
}

func TestPhotoUsecase_Upload_Rejects(t *testing.T) {
	body := func() *bytes.Reader { return bytes.NewReader([]byte("x")) }
	tests := []struct {
		name    string
		files   []ImageFile
		wantErr error
	}{
		{"no files", nil, domain.ErrInvalidInput},
		{"empty file", []ImageFile{{Name: "a.jpg", ContentType: "image/jpeg", Size: 0, Body: body()}}, domain.ErrInvalidInput},
		{"too large", []ImageFile{{Name: "a.jpg", ContentType: "image/jpeg", Size: 2048, Body: body()}}, domain.ErrImageTooLarge},
		{"pdf", []ImageFile{{Name: "a.pdf", ContentType: "application/pdf", Size: 1, Body: body()}}, domain.ErrUnsupportedImage},
		{"svg", []ImageFile{{Name: "a.svg", ContentType: "image/svg+xml", Size: 1, Body: body()}}, domain.ErrUnsupportedImage},
		{"too many", []ImageFile{
			{Name: "1.jpg", ContentType: "image/jpeg", Size: 1, Body: body()},
			{Name: "2.jpg", ContentType: "image/jpeg", Size: 1, Body: body()},
			{Name: "3.jpg", ContentType: "image/jpeg", Size: 1, Body: body()},
		}, domain.ErrTooManyImages},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(mocks.MockImageStorage)
			uc := NewPhotoUsecase(storage, nil, 1024, 2, logger.NewNop())

			_, err := uc.Upload(context.Background(), tt.files)
			assert.ErrorIs(t, err, tt.wantErr)
			storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPhotoUsecase_Upload_RollsBackOnFailure(t *testing.T) {
	storage := new(mocks.MockImageStorage)
	uc := NewPhotoUsecase(storage, nil, 1024, 10, logger.NewNop())

	files := []ImageFile{
		{Name: "ok.jpg", ContentType: "image/jpeg", Size: 1, Body: bytes.NewReader([]byte("x"))},
		{Name: "bad.jpg", ContentType: "image/jpeg", Size: 1, Body: bytes.NewReader([]byte("y"))},
	}
	storage.On("Upload", mock.Anything, "ok.jpg", "image/jpeg", int64(1), mock.Anything).Return("https://cdn/ok", nil).Once()
	storage.On("Upload", mock.Anything, "bad.jpg", "image/jpeg", int64(1), mock.Anything).Return("", errors.New("bucket full")).Once()
	// ok.jpg may or may not have finished before the group was cancelled.
	storage.On("Delete", mock.Anything, "https://cdn/ok").Return(nil).Maybe()

	urls, err := uc.Upload(context.Background(), files)
	assert.Error(t, err)
	assert.Nil(t, urls)
	assert.Contains(t, err.Error(), "bad.jpg")
}
