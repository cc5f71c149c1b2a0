package handler

import (
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/util"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
	"github.com/gin-gonic/gin"
)

// CommentsAPIController binds HTTP requests to the CommentService
type CommentsAPIController struct {
	Service *services.CommentService
}

// NewCommentsAPIController creates a new controller
func NewCommentsAPIController(s *services.CommentService) *CommentsAPIController {
	return &CommentsAPIController{Service: s}
}

// ListComments handles GET /comments
func (c *CommentsAPIController) ListComments(ctx *gin.Context, p *models.ListCommentsParams) ([]models.CommentResponse, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 25
	}
	comments, pagination, err := c.Service.ListComments(ctx.Request.Context(), p)
	if err != nil {
		return nil, err
	}
	util.SetPaginationHeaders(ctx, pagination)
	return comments, nil
}

// RetrieveComment handles GET /comments/:id
func (c *CommentsAPIController) RetrieveComment(ctx *gin.Context, params *models.CommentParams) (*models.CommentResponse, error) {
	comment, err := c.Service.RetrieveComment(ctx.Request.Context(), params.Id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, problem.NewNotFound(params.Id, "Comment not found")
	}
	return comment, nil
}

// ListReplies handles GET /comments/:id/replies
func (c *CommentsAPIController) ListReplies(ctx *gin.Context, p *models.ListRepliesParams) ([]models.CommentResponse, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 25
	}
	replies, pagination, err := c.Service.ListReplies(ctx.Request.Context(), p.Id, p.Page, p.PerPage)
	if err != nil {
		return nil, err
	}
	util.SetPaginationHeaders(ctx, pagination)
	return replies, nil
}

// CreateComment handles POST /comments
func (c *CommentsAPIController) CreateComment(ctx *gin.Context, body *models.CreateCommentInput) (*models.CommentResponse, error) {
	return c.Service.CreateComment(ctx.Request.Context(), body, RequestMeta(ctx))
}

// RequestMeta pulls the client address, user agent and captcha cookie out of
// the request for the service layer.
func RequestMeta(ctx *gin.Context) models.RequestMeta {
	cookie, _ := ctx.Cookie("captcha_key")
	return models.RequestMeta{
		IP:               ctx.ClientIP(),
		UserAgent:        ctx.Request.UserAgent(),
		CaptchaKeyCookie: cookie,
	}
}
