package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartpantry/internal/config"
	"smartpantry/internal/domain"
	"smartpantry/internal/port"
	"smartpantry/internal/service"
	"smartpantry/mocks"
)

// memFile adapts an in-memory buffer to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// jpegBytes returns a minimal payload that sniffs as image/jpeg.
func jpegBytes() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x01}, 64)...)
}

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Bucket:        "receipts-bucket",
		MaxFileSizeMB: 5,
		PresignExpiry: 900,
	}
}

func uploadInput(userID uuid.UUID, filename string, content []byte) service.FileUploadInput {
	return service.FileUploadInput{
		UserID: userID,
		File:   memFile{bytes.NewReader(content)},
		Header: &multipart.FileHeader{
			Filename: filename,
			Size:     int64(len(content)),
		},
	}
}

func TestFileUpload(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())
	userID := uuid.New()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil).Once()
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			input := args.Get(1).(port.UploadInput)
			assert.Equal(t, "receipts-bucket", input.Bucket)
			assert.Equal(t, "image/jpeg", input.ContentType)
		}).
		Return(&port.UploadOutput{Location: "s3://receipts-bucket/key"}, nil).Once()
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).
		Return(nil).Once()

	meta, err := svc.Upload(context.Background(), uploadInput(userID, "receipt.jpg", jpegBytes()))

	require.NoError(t, err)
	assert.Equal(t, domain.FileTypeJPG, meta.FileType)
	assert.Equal(t, domain.FileStatusUploaded, meta.Status)
	assert.Equal(t, "receipt.jpg", meta.OriginalName)
	assert.Contains(t, meta.S3Key, userID.String())
	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileUpload_UnsupportedExtension(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())

	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), "receipt.pdf", jpegBytes()))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	fileRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFileUpload_ContentMismatch(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())

	// .jpg extension but plain text payload
	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), "receipt.jpg", []byte("not an image at all")))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestFileUpload_TooLarge(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())

	input := uploadInput(uuid.New(), "receipt.jpg", jpegBytes())
	input.Header.Size = 6 * 1024 * 1024

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFileUpload_StorageFailureMarksFailed(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, assert.AnError)
	fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).
		Return(nil).Once()

	_, err := svc.Upload(context.Background(), uploadInput(uuid.New(), "receipt.jpg", jpegBytes()))

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	fileRepo.AssertExpectations(t)
}

func TestFileGetDownloadURL(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())
	userID := uuid.New()
	fileID := uuid.New()

	fileRepo.On("GetByID", mock.Anything, userID, fileID).Return(&domain.FileMeta{
		ID:       fileID,
		UserID:   userID,
		S3Bucket: "receipts-bucket",
		S3Key:    "users/key",
	}, nil)
	storage.On("GetPresignedURL", mock.Anything, "receipts-bucket", "users/key", int64(900)).
		Return("https://signed.example/receipt.jpg", nil)

	url, err := svc.GetDownloadURL(context.Background(), userID, fileID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/receipt.jpg", url)
}

func TestFileDelete_RemovesObjectFirst(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewFileService(fileRepo, storage, testS3Config())
	userID := uuid.New()
	fileID := uuid.New()

	fileRepo.On("GetByID", mock.Anything, userID, fileID).Return(&domain.FileMeta{
		ID:       fileID,
		UserID:   userID,
		S3Bucket: "receipts-bucket",
		S3Key:    "users/key",
	}, nil)
	storage.On("Delete", mock.Anything, "receipts-bucket", "users/key").Return(nil).Once()
	fileRepo.On("Delete", mock.Anything, userID, fileID).Return(nil).Once()

	err := svc.Delete(context.Background(), userID, fileID)

	require.NoError(t, err)
	storage.AssertExpectations(t)
	fileRepo.AssertExpectations(t)
}
