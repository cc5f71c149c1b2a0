package storage_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	fs := storage.New(t.TempDir(), "/media/")

	rel, err := fs.Save(".txt", []byte("payload"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, time.Now().UTC().Format("2006/01/02")+"/"))
	assert.True(t, strings.HasSuffix(rel, ".txt"))

	data, err := os.ReadFile(fs.Abs(rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, fs.Remove(rel))
	_, err = os.Stat(fs.Abs(rel))
	assert.True(t, os.IsNotExist(err))
}

func TestRemove_MissingIsNotAnError(t *testing.T) {
	fs := storage.New(t.TempDir(), "/media")
	assert.NoError(t, fs.Remove("2026/01/01/gone.png"))
}

func TestURL(t *testing.T) {
	fs := storage.New(t.TempDir(), "/media/")
	assert.Equal(t, "/media/2026/01/01/a.png", fs.URL("2026/01/01/a.png"))
}

func TestSave_UniqueNames(t *testing.T) {
	fs := storage.New(t.TempDir(), "/media")
	a, err := fs.Save(".jpg", []byte("one"))
	require.NoError(t, err)
	b, err := fs.Save(".jpg", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
