package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
	"github.com/Rushibhatt10/HBEstate/internal/property/usecase"
)

const multipartMemory = 8 << 20

// UploadLimits bounds multipart uploads.
type UploadLimits struct {
	MaxFileBytes int64
	MaxFiles     int
}

func (l UploadLimits) bodyLimit() int64 {
	files := int64(l.MaxFiles)
	if files <= 0 {
		files = 1
	}
	return files*l.MaxFileBytes + 1<<20
}

// parseMultipart reads a multipart body bounded by the upload limits.
func parseMultipart(w http.ResponseWriter, r *http.Request, limits UploadLimits) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.bodyLimit())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrImageTooLarge, limits.bodyLimit())
		}
		return invalidInput("invalid multipart form")
	}
	return nil
}

// openImages opens every file under field. The returned closer must be
// called once the files have been consumed.
func openImages(r *http.Request, field string) ([]usecase.ImageFile, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]usecase.ImageFile, 0, len(headers))
	opened := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, invalidInput(fmt.Sprintf("cannot read %q", fh.Filename))
		}
		opened = append(opened, f)
		files = append(files, imageFile(fh, f))
	}
	return files, closeAll, nil
}

func imageFile(fh *multipart.FileHeader, f multipart.File) usecase.ImageFile {
	return usecase.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
}
