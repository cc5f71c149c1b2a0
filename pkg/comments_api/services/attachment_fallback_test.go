package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/images"
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// An unexpected normalizer failure after a successful sniff must not lose
// the upload: it degrades to a plain binary attachment with the original
// bytes. The normalizer is stubbed because both stages share the same
// decoders, so no real input can disagree between them.
func TestIngest_BinaryFallbackOnNormalizeError(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Comment{}, &models.Attachment{}))

	repo := repositories.NewCommentRepository(db)
	files := storage.New(t.TempDir(), "/media")
	svc := NewAttachmentService(repo, files)
	svc.normalize = func([]byte, string) (*images.Normalized, error) {
		return nil, errors.New("decoder failure")
	}

	ctx := context.Background()
	author := &models.User{Id: "u1", Name: "alice", Email: "alice@example.com"}
	comment := &models.Comment{Id: "c1", TextRaw: "hello", TextHtml: "hello"}
	require.NoError(t, repo.SaveCommentWithAuthor(ctx, author, comment))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 8))))
	original := buf.Bytes()

	resp, err := svc.Ingest(ctx, "c1", bytes.NewReader(original), "pic.png")
	require.NoError(t, err)

	assert.False(t, resp.IsImage)
	assert.Equal(t, models.ContentTypeOctetStream, resp.ContentType)
	assert.Nil(t, resp.Width)
	assert.Nil(t, resp.Height)
	assert.Equal(t, "pic.png", resp.FileName)
	assert.Equal(t, int64(len(original)), resp.Size)

	// The original upload bytes reach disk untouched.
	paths, err := repo.AttachmentPaths(ctx)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	stored, err := os.ReadFile(files.Abs(paths[0]))
	require.NoError(t, err)
	assert.Equal(t, original, stored)
}

// The hard-reject path must stay distinct from the fallback: a format
// outside the allow-list fails the request even though it decoded.
func TestIngest_UnsupportedFormatStillRejects(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Comment{}, &models.Attachment{}))

	repo := repositories.NewCommentRepository(db)
	files := storage.New(t.TempDir(), "/media")
	svc := NewAttachmentService(repo, files)
	svc.normalize = func([]byte, string) (*images.Normalized, error) {
		return nil, images.ErrUnsupportedFormat
	}

	ctx := context.Background()
	author := &models.User{Id: "u1", Name: "alice", Email: "alice@example.com"}
	comment := &models.Comment{Id: "c1", TextRaw: "hello", TextHtml: "hello"}
	require.NoError(t, repo.SaveCommentWithAuthor(ctx, author, comment))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 8))))

	_, err = svc.Ingest(ctx, "c1", bytes.NewReader(buf.Bytes()), "pic.png")
	require.Error(t, err)
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)

	paths, err := repo.AttachmentPaths(ctx)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
