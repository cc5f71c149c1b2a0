package handler

import (
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/util"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
	"github.com/gin-gonic/gin"
)

// AdminAPIController serves the back-office list/search/filter views.
type AdminAPIController struct {
	Service *services.CommentService
}

func NewAdminAPIController(s *services.CommentService) *AdminAPIController {
	return &AdminAPIController{Service: s}
}

// SearchComments handles GET /admin/comments
func (c *AdminAPIController) SearchComments(ctx *gin.Context, p *models.AdminListCommentsParams) ([]models.CommentResponse, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 25
	}
	comments, pagination, err := c.Service.SearchComments(ctx.Request.Context(), p)
	if err != nil {
		return nil, err
	}
	util.SetPaginationHeaders(ctx, pagination)
	return comments, nil
}

// ListUsers handles GET /admin/users
func (c *AdminAPIController) ListUsers(ctx *gin.Context, p *models.AdminListUsersParams) ([]models.UserResponse, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 25
	}
	users, pagination, err := c.Service.ListUsers(ctx.Request.Context(), p)
	if err != nil {
		return nil, err
	}
	util.SetPaginationHeaders(ctx, pagination)
	return users, nil
}
