package assets_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmotors/car-ledger-api/internal/adapter"
	"github.com/openmotors/car-ledger-api/internal/assets"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/logger"
	"github.com/openmotors/car-ledger-api/internal/mocks"
)

// pngBytes is a minimal 1x1 PNG, enough for content-type sniffing
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, // signature
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52, // IHDR
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, // IEND
	0x44, 0xAE, 0x42, 0x60, 0x82,
}

// testStorageMocks contains all the mocks needed for testing the image storage
type testStorageMocks struct {
	ctrl    *gomock.Controller
	fs      *mocks.MockFileSystem
	storage assets.Storage
}

// setupTestStorage creates all the mocks and the storage for testing
func setupTestStorage(t *testing.T, maxFileSize int64) *testStorageMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testStorageMocks{
		ctrl: ctrl,
		fs:   mocks.NewMockFileSystem(ctrl),
	}

	tm.storage = assets.NewStorage("uploads", maxFileSize, tm.fs)

	return tm
}

// tearDownTestStorage cleans up the test mocks
func tearDownTestStorage(mocks *testStorageMocks) {
	mocks.ctrl.Finish()
}

func TestStorage_SaveImage_Success(t *testing.T) {
	tm := setupTestStorage(t, 1024*1024)
	defer tearDownTestStorage(tm)

	file := mocks.NewMockFile(tm.ctrl)

	tm.fs.EXPECT().
		MkdirAll("uploads", gomock.Any()).
		Return(nil)

	var savedPath string
	tm.fs.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(name string) (adapter.File, error) {
			savedPath = name
			return file, nil
		})

	file.EXPECT().
		Write(pngBytes).
		Return(len(pngBytes), nil)
	file.EXPECT().
		Close().
		Return(nil)

	path, err := tm.storage.SaveImage(context.Background(), bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, savedPath, path)

	// The sniffed extension wins regardless of what the client named the file.
	assert.True(t, strings.HasPrefix(path, "uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))
}

func TestStorage_SaveImage_Empty(t *testing.T) {
	tm := setupTestStorage(t, 1024)
	defer tearDownTestStorage(tm)

	_, err := tm.storage.SaveImage(context.Background(), bytes.NewReader(nil))

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "image", validationErr.Field)
	assert.Equal(t, "required", validationErr.Reason)
}

func TestStorage_SaveImage_TooLarge(t *testing.T) {
	tm := setupTestStorage(t, 16)
	defer tearDownTestStorage(tm)

	_, err := tm.storage.SaveImage(context.Background(), bytes.NewReader(pngBytes))

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "image", validationErr.Field)
	assert.Contains(t, validationErr.Reason, "size limit")
}

func TestStorage_SaveImage_NotAnImage(t *testing.T) {
	tm := setupTestStorage(t, 1024)
	defer tearDownTestStorage(tm)

	_, err := tm.storage.SaveImage(context.Background(), strings.NewReader("#!/bin/sh\nrm -rf /\n"))

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "image", validationErr.Field)
	assert.Contains(t, validationErr.Reason, "unsupported content type")
}

func TestStorage_SaveImage_WriteFailureCleansUp(t *testing.T) {
	tm := setupTestStorage(t, 1024*1024)
	defer tearDownTestStorage(tm)

	file := mocks.NewMockFile(tm.ctrl)

	tm.fs.EXPECT().
		MkdirAll("uploads", gomock.Any()).
		Return(nil)

	var savedPath string
	tm.fs.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(name string) (adapter.File, error) {
			savedPath = name
			return file, nil
		})

	file.EXPECT().
		Write(pngBytes).
		Return(0, errors.New("disk full"))
	file.EXPECT().
		Close().
		Return(nil)

	// The partially written file is removed.
	tm.fs.EXPECT().
		Remove(gomock.Any()).
		DoAndReturn(func(name string) error {
			assert.Equal(t, savedPath, name)
			return nil
		})

	_, err := tm.storage.SaveImage(context.Background(), bytes.NewReader(pngBytes))
	assert.ErrorContains(t, err, "failed to write image file")
}
