package mocks

import (
	"context"
	"io"

	"github.com/maynagashev/vocabvault/internal/storage"
	"github.com/stretchr/testify/mock"
)

// FileStorage - мок storage.FileStorage. Загруженное содержимое сохраняется в Uploaded.
type FileStorage struct {
	mock.Mock
	Uploaded map[string][]byte
}

var _ storage.FileStorage = (*FileStorage)(nil)

func (m *FileStorage) UploadFile(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if m.Uploaded == nil {
		m.Uploaded = make(map[string][]byte)
	}
	m.Uploaded[objectKey] = data
	return m.Called(ctx, objectKey, size, contentType).Error(0)
}
