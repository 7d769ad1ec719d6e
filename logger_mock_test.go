package linelog_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/linelog"
	"golift.io/linelog/mocks"
)

const mockPath = "/var/log/service.log"

func mockConfig(mockFiler *mocks.MockFiler, reported *[]error) linelog.Config {
	config := testConfig("service", reported)
	config.Filer = mockFiler

	return config
}

func TestCreateError(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	mockCtrl := gomock.NewController(t)
	mockFiler := mocks.NewMockFiler(mockCtrl)

	var reported []error

	gomock.InOrder(
		mockFiler.EXPECT().Stat(mockPath).Return(nil, fs.ErrNotExist),
		mockFiler.EXPECT().MkdirAll("/var/log", linelog.DirMode).Return(errTest),
	)

	logger, err := linelog.New(mockConfig(mockFiler, &reported), "/var/log")
	assert.ErrorIs(err, linelog.ErrCreate)
	assert.ErrorIs(err, errTest)
	assert.Nil(logger)
	require.Len(t, reported, 1)
	assert.ErrorIs(reported[0], linelog.ErrCreate)
}

func TestCreateOpenError(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	mockCtrl := gomock.NewController(t)
	mockFiler := mocks.NewMockFiler(mockCtrl)

	gomock.InOrder(
		mockFiler.EXPECT().Stat(mockPath).Return(nil, fs.ErrNotExist),
		mockFiler.EXPECT().MkdirAll("/var/log", linelog.DirMode),
		mockFiler.EXPECT().OpenFile(mockPath, os.O_WRONLY|os.O_CREATE, linelog.FileMode).Return(nil, fs.ErrPermission),
	)

	_, err := linelog.New(mockConfig(mockFiler, nil), "/var/log")
	assert.ErrorIs(err, linelog.ErrCreate)
	assert.ErrorIs(err, fs.ErrPermission)
}

// NewMust keeps the Logger when the file cannot be made, and appends try again.
func TestNewMustRetries(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	mockCtrl := gomock.NewController(t)
	mockFiler := mocks.NewMockFiler(mockCtrl)

	var reported []error

	gomock.InOrder(
		mockFiler.EXPECT().Stat(mockPath).Return(nil, fs.ErrNotExist),
		mockFiler.EXPECT().MkdirAll("/var/log", linelog.DirMode).Return(errTest),
		mockFiler.EXPECT().OpenFile(mockPath, os.O_RDWR|os.O_CREATE, linelog.FileMode).Return(nil, fs.ErrNotExist),
	)

	logger := linelog.NewMust(mockConfig(mockFiler, &reported), "/var/log")
	require.NotNil(t, logger)

	path, ok := logger.LogFile()
	assert.True(ok)
	assert.Equal(mockPath, path)

	logger.Info("nowhere")
	require.Len(t, reported, 2)
	assert.ErrorIs(reported[0], linelog.ErrCreate)
	assert.ErrorIs(reported[1], linelog.ErrNotFound)
	assert.ErrorIs(logger.LastError(), linelog.ErrNotFound)
	assert.Equal(linelog.Stats{Failed: 2}, logger.Stats())
}

func TestAppendError(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	mockCtrl := gomock.NewController(t)
	mockFiler := mocks.NewMockFiler(mockCtrl)

	gomock.InOrder(
		mockFiler.EXPECT().Stat(mockPath),
		mockFiler.EXPECT().OpenFile(mockPath, os.O_RDWR|os.O_CREATE, linelog.FileMode).Return(nil, fs.ErrPermission),
	)

	logger, err := linelog.New(mockConfig(mockFiler, nil), "/var/log")
	require.NoError(t, err)

	err = logger.Append("INFO", "denied")
	assert.ErrorIs(err, linelog.ErrAppend)
	assert.ErrorIs(err, fs.ErrPermission)
	assert.False(errors.Is(err, linelog.ErrNotFound))
	assert.Equal(err, logger.LastError())
}

// A handle that cannot be read lets the write succeed and the rotation fail.
func TestRotateError(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	mockCtrl := gomock.NewController(t)
	mockFiler := mocks.NewMockFiler(mockCtrl)

	backing := filepath.Join(t.TempDir(), "real.log")
	writeOnly, err := os.OpenFile(backing, os.O_WRONLY|os.O_CREATE, linelog.FileMode)
	require.NoError(t, err)

	gomock.InOrder(
		mockFiler.EXPECT().Stat(mockPath),
		mockFiler.EXPECT().OpenFile(mockPath, os.O_RDWR|os.O_CREATE, linelog.FileMode).Return(writeOnly, nil),
	)

	var reported []error

	config := mockConfig(mockFiler, &reported)
	config.Rotation = linelog.Rotation{Enabled: true, MaxLines: 10}
	logger, err := linelog.New(config, "/var/log")
	require.NoError(t, err)

	err = logger.Append("INFO", "kept")
	assert.ErrorIs(err, linelog.ErrRotate)
	require.Len(t, reported, 1)
	assert.ErrorIs(reported[0], linelog.ErrRotate)

	// The entry was written before the rotation failed.
	data, err := os.ReadFile(backing)
	assert.NoError(err)
	assert.Equal(stamp+" [INFO] : kept \n", string(data))
	assert.Equal(linelog.Stats{Appended: 1, Failed: 1}, logger.Stats())
}
