package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/captcha"
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/repositories"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	repo        repositories.CommentRepository
	comments    *services.CommentService
	attachments *services.AttachmentService
	captcha     *captcha.Captcha
	files       *storage.FileStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Comment{}, &models.Attachment{}))

	repo := repositories.NewCommentRepository(db)
	c := captcha.New(captcha.NewMemoryStore(), time.Minute)
	files := storage.New(t.TempDir(), "/media")
	return &testEnv{
		repo:        repo,
		comments:    services.NewCommentService(repo, c, files),
		attachments: services.NewAttachmentService(repo, files),
		captcha:     c,
		files:       files,
	}
}

func (e *testEnv) solvedCaptcha(t *testing.T) string {
	t.Helper()
	key, err := e.captcha.Issue(context.Background(), "aB3dE")
	require.NoError(t, err)
	return key
}

func validInput(captchaKey string) *models.CreateCommentInput {
	return &models.CreateCommentInput{
		UserName:   "alice42",
		Email:      "alice@example.com",
		Text:       "first!",
		Captcha:    "aB3dE",
		CaptchaKey: captchaKey,
	}
}

func requireStatus(t *testing.T, err error, status int) problem.APIError {
	t.Helper()
	require.Error(t, err)
	var apiErr problem.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.Status)
	return apiErr
}

func TestCreateComment(t *testing.T) {
	env := setupEnv(t)
	input := validInput(env.solvedCaptcha(t))
	input.Text = "check https://example.com <script>alert(1)</script>"

	resp, err := env.comments.CreateComment(context.Background(), input, models.RequestMeta{IP: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, "alice42", resp.UserName)
	assert.NotEmpty(t, resp.Id)
	assert.Contains(t, resp.TextHtml, `<a href="https://example.com">`)
	assert.NotContains(t, resp.TextHtml, "<script")
	// The raw text is kept untouched.
	assert.Contains(t, resp.TextRaw, "<script>")
}

func TestCreateComment_WrongCaptcha(t *testing.T) {
	env := setupEnv(t)
	input := validInput(env.solvedCaptcha(t))
	input.Captcha = "wrong"

	_, err := env.comments.CreateComment(context.Background(), input, models.RequestMeta{})
	requireStatus(t, err, 400)

	// Nothing was written.
	list, _, lerr := env.comments.ListComments(context.Background(), &models.ListCommentsParams{Page: 1, PerPage: 25})
	require.NoError(t, lerr)
	assert.Empty(t, list)
}

func TestCreateComment_CaptchaKeySingleUse(t *testing.T) {
	env := setupEnv(t)
	key := env.solvedCaptcha(t)

	_, err := env.comments.CreateComment(context.Background(), validInput(key), models.RequestMeta{})
	require.NoError(t, err)

	_, err = env.comments.CreateComment(context.Background(), validInput(key), models.RequestMeta{})
	requireStatus(t, err, 400)
}

func TestCreateComment_CookieFallback(t *testing.T) {
	env := setupEnv(t)
	key := env.solvedCaptcha(t)

	input := validInput("")
	meta := models.RequestMeta{CaptchaKeyCookie: key}
	_, err := env.comments.CreateComment(context.Background(), input, meta)
	require.NoError(t, err)
}

func TestCreateComment_ExplicitKeyWinsOverCookie(t *testing.T) {
	env := setupEnv(t)
	key := env.solvedCaptcha(t)

	input := validInput(key)
	meta := models.RequestMeta{CaptchaKeyCookie: "stale-cookie-key"}
	_, err := env.comments.CreateComment(context.Background(), input, meta)
	require.NoError(t, err)
}

func TestCreateComment_InvalidUserName(t *testing.T) {
	env := setupEnv(t)
	input := validInput(env.solvedCaptcha(t))
	input.UserName = "not valid!"

	_, err := env.comments.CreateComment(context.Background(), input, models.RequestMeta{})
	requireStatus(t, err, 400)
}

func TestCreateComment_MissingParent(t *testing.T) {
	env := setupEnv(t)
	input := validInput(env.solvedCaptcha(t))
	missing := "nope"
	input.ParentId = &missing

	_, err := env.comments.CreateComment(context.Background(), input, models.RequestMeta{})
	requireStatus(t, err, 404)
}

func TestListReplies(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	parent, err := env.comments.CreateComment(ctx, validInput(env.solvedCaptcha(t)), models.RequestMeta{})
	require.NoError(t, err)

	reply := validInput(env.solvedCaptcha(t))
	reply.UserName = "bob7"
	reply.Email = "bob@example.com"
	reply.ParentId = &parent.Id
	_, err = env.comments.CreateComment(ctx, reply, models.RequestMeta{})
	require.NoError(t, err)

	replies, pagination, err := env.comments.ListReplies(ctx, parent.Id, 1, 25)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "bob7", replies[0].UserName)
	assert.Equal(t, 1, pagination.TotalRecords)

	// Replies stay out of the top-level listing, which counts them instead.
	top, _, err := env.comments.ListComments(ctx, &models.ListCommentsParams{Page: 1, PerPage: 25})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].RepliesCount)
}

func TestListReplies_MissingParent(t *testing.T) {
	env := setupEnv(t)
	_, _, err := env.comments.ListReplies(context.Background(), "nope", 1, 25)
	requireStatus(t, err, 404)
}

func TestRetrieveComment_Missing(t *testing.T) {
	env := setupEnv(t)
	resp, err := env.comments.RetrieveComment(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
