package models

import (
	"fmt"
	"time"
)

// Content types an Attachment may carry. OctetStream is the fallback when an
// image survived sniffing but failed normalization unexpectedly.
const (
	ContentTypeJPEG        = "image/jpeg"
	ContentTypePNG         = "image/png"
	ContentTypeGIF         = "image/gif"
	ContentTypeText        = "text/plain; charset=utf-8"
	ContentTypeOctetStream = "application/octet-stream"
)

// Attachment is an upload owned by a Comment. IsImage is the sole
// discriminator between the image and non-image shapes: it holds exactly
// when Width and Height are set and ContentType is one of the image types.
type Attachment struct {
	Id          string    `json:"id" gorm:"column:id;primaryKey"`
	CommentID   string    `json:"commentId" gorm:"column:comment_id;index;not null"`
	FilePath    string    `json:"-"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
	IsImage     bool      `json:"isImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsImageContentType reports whether ct belongs to the image MIME set.
func IsImageContentType(ct string) bool {
	return ct == ContentTypeJPEG || ct == ContentTypePNG || ct == ContentTypeGIF
}

// CheckShape enforces the exactly-one-shape invariant before persistence.
func (a *Attachment) CheckShape() error {
	if a.IsImage {
		if a.Width == nil || a.Height == nil {
			return fmt.Errorf("attachment %s: image without dimensions", a.Id)
		}
		if !IsImageContentType(a.ContentType) {
			return fmt.Errorf("attachment %s: image with content type %q", a.Id, a.ContentType)
		}
		return nil
	}
	if a.Width != nil || a.Height != nil {
		return fmt.Errorf("attachment %s: non-image with dimensions", a.Id)
	}
	if IsImageContentType(a.ContentType) {
		return fmt.Errorf("attachment %s: non-image with content type %q", a.Id, a.ContentType)
	}
	return nil
}
