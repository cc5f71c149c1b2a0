package serializers

import (
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
)

func SerializeComment(c *models.Comment, files *storage.FileStore) models.CommentResponse {
	resp := models.CommentResponse{
		Id:           c.Id,
		ParentId:     c.ParentID,
		TextRaw:      c.TextRaw,
		TextHtml:     c.TextHtml,
		CreatedAt:    c.CreatedAt,
		RepliesCount: c.RepliesCount,
		Attachments:  make([]models.AttachmentResponse, 0, len(c.Attachments)),
	}
	if c.Author != nil {
		resp.UserName = c.Author.Name
		resp.Email = c.Author.Email
		resp.HomePage = c.Author.HomePage
	}
	for i := range c.Attachments {
		resp.Attachments = append(resp.Attachments, SerializeAttachment(&c.Attachments[i], files))
	}
	return resp
}

func SerializeComments(comments []models.Comment, files *storage.FileStore) []models.CommentResponse {
	out := make([]models.CommentResponse, len(comments))
	for i := range comments {
		out[i] = SerializeComment(&comments[i], files)
	}
	return out
}

func SerializeAttachment(a *models.Attachment, files *storage.FileStore) models.AttachmentResponse {
	return models.AttachmentResponse{
		Id:          a.Id,
		Url:         files.URL(a.FilePath),
		ContentType: a.ContentType,
		FileName:    a.FileName,
		Size:        a.Size,
		Width:       a.Width,
		Height:      a.Height,
		IsImage:     a.IsImage,
		CreatedAt:   a.CreatedAt,
	}
}

func SerializeUser(u *models.User) models.UserResponse {
	return models.UserResponse{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		HomePage:  u.HomePage,
		IP:        u.IP,
		CreatedAt: u.CreatedAt,
	}
}
