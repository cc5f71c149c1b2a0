package handler

import (
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
	"github.com/gin-gonic/gin"
)

// AttachmentsAPIController binds uploads to the AttachmentService
type AttachmentsAPIController struct {
	Service *services.AttachmentService
}

func NewAttachmentsAPIController(s *services.AttachmentService) *AttachmentsAPIController {
	return &AttachmentsAPIController{Service: s}
}

// UploadAttachment handles POST /comments/:id/attachments (multipart form,
// field name "file").
func (c *AttachmentsAPIController) UploadAttachment(ctx *gin.Context, params *models.CommentParams) (*models.AttachmentResponse, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, problem.NewBadRequest("file", "file is required",
			problem.InvalidParam{Name: "file", Reason: "is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return nil, problem.NewInternalServerError(err.Error())
	}
	defer f.Close()

	return c.Service.Ingest(ctx.Request.Context(), params.Id, f, fh.Filename)
}
