package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/captcha"
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/sanitize"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/repositories"
	"github.com/dimal11/comments-api/pkg/comments_api/serializers"
	"github.com/teris-io/shortid"
)

var userNameRe = regexp.MustCompile(`^[A-Za-z0-9]{1,30}$`)

// CommentService implements comment creation and listing on top of the
// repository, the captcha verifier and the sanitizer.
type CommentService struct {
	repo    repositories.CommentRepository
	captcha *captcha.Captcha
	files   *storage.FileStore
}

func NewCommentService(repo repositories.CommentRepository, c *captcha.Captcha, files *storage.FileStore) *CommentService {
	return &CommentService{repo: repo, captcha: c, files: files}
}

// CreateComment verifies the captcha first; a failed verification aborts
// with no writes and burns the challenge key. The explicit captchaKey field
// wins over the cookie fallback.
func (s *CommentService) CreateComment(ctx context.Context, input *models.CreateCommentInput, meta models.RequestMeta) (*models.CommentResponse, error) {
	key := input.CaptchaKey
	if key == "" {
		key = meta.CaptchaKeyCookie
	}
	if !s.captcha.Verify(ctx, key, input.Captcha) {
		return nil, problem.NewBadRequest("captcha", "Captcha invalid or expired",
			problem.InvalidParam{Name: "captcha", Reason: "Captcha invalid or expired"})
	}

	// The GraphQL surface shares this path, so validate besides binding.
	if !userNameRe.MatchString(input.UserName) {
		return nil, problem.NewBadRequest("userName", "userName must be 1-30 latin letters or digits",
			problem.InvalidParam{Name: "userName", Reason: "must be 1-30 latin letters or digits"})
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, problem.NewBadRequest("text", "text is required",
			problem.InvalidParam{Name: "text", Reason: "is required"})
	}

	if input.ParentId != nil {
		parent, err := s.repo.GetCommentByID(ctx, *input.ParentId)
		if err != nil {
			return nil, problem.NewInternalServerError(err.Error())
		}
		if parent == nil {
			return nil, problem.NewNotFound(*input.ParentId, "Parent comment not found")
		}
	}

	author := &models.User{
		Id:        shortid.MustGenerate(),
		Name:      input.UserName,
		Email:     input.Email,
		HomePage:  input.HomePage,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}
	comment := &models.Comment{
		Id:        shortid.MustGenerate(),
		ParentID:  input.ParentId,
		TextRaw:   input.Text,
		TextHtml:  sanitize.CommentHTML(input.Text),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}

	if err := s.repo.SaveCommentWithAuthor(ctx, author, comment); err != nil {
		return nil, problem.NewInternalServerError(err.Error())
	}

	comment.Author = author
	resp := serializers.SerializeComment(comment, s.files)
	return &resp, nil
}

// ListComments returns top-level comments only; replies hang off their
// parent via ListReplies.
func (s *CommentService) ListComments(ctx context.Context, p *models.ListCommentsParams) ([]models.CommentResponse, models.Pagination, error) {
	comments, pagination, err := s.repo.GetComments(ctx, p.Page, p.PerPage, p.Order, nil)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return serializers.SerializeComments(comments, s.files), pagination, nil
}

func (s *CommentService) ListReplies(ctx context.Context, id string, page, perPage int) ([]models.CommentResponse, models.Pagination, error) {
	parent, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if parent == nil {
		return nil, models.Pagination{}, problem.NewNotFound(id, "Comment not found")
	}
	comments, pagination, err := s.repo.GetComments(ctx, page, perPage, "createdAt", &id)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return serializers.SerializeComments(comments, s.files), pagination, nil
}

func (s *CommentService) RetrieveComment(ctx context.Context, id string) (*models.CommentResponse, error) {
	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil || comment == nil {
		return nil, err
	}
	resp := serializers.SerializeComment(comment, s.files)
	return &resp, nil
}

// SearchComments backs the admin list/search/filter view.
func (s *CommentService) SearchComments(ctx context.Context, p *models.AdminListCommentsParams) ([]models.CommentResponse, models.Pagination, error) {
	comments, pagination, err := s.repo.SearchComments(ctx, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return serializers.SerializeComments(comments, s.files), pagination, nil
}

func (s *CommentService) ListUsers(ctx context.Context, p *models.AdminListUsersParams) ([]models.UserResponse, models.Pagination, error) {
	users, pagination, err := s.repo.GetUsers(ctx, p.Page, p.PerPage, p.Q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	out := make([]models.UserResponse, len(users))
	for i := range users {
		out[i] = serializers.SerializeUser(&users[i])
	}
	return out, pagination, nil
}
