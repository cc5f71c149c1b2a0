package models_test

import (
	"testing"

	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCheckShape(t *testing.T) {
	cases := []struct {
		name    string
		att     models.Attachment
		wantErr bool
	}{
		{
			name: "valid image",
			att:  models.Attachment{Id: "a1", IsImage: true, ContentType: models.ContentTypeJPEG, Width: intPtr(300), Height: intPtr(240)},
		},
		{
			name: "valid text",
			att:  models.Attachment{Id: "a2", ContentType: models.ContentTypeText},
		},
		{
			name: "valid binary fallback",
			att:  models.Attachment{Id: "a3", ContentType: models.ContentTypeOctetStream},
		},
		{
			name:    "image without dimensions",
			att:     models.Attachment{Id: "a4", IsImage: true, ContentType: models.ContentTypePNG},
			wantErr: true,
		},
		{
			name:    "image with text content type",
			att:     models.Attachment{Id: "a5", IsImage: true, ContentType: models.ContentTypeText, Width: intPtr(1), Height: intPtr(1)},
			wantErr: true,
		},
		{
			name:    "non-image with dimensions",
			att:     models.Attachment{Id: "a6", ContentType: models.ContentTypeText, Width: intPtr(1), Height: intPtr(1)},
			wantErr: true,
		},
		{
			name:    "non-image with image content type",
			att:     models.Attachment{Id: "a7", ContentType: models.ContentTypeGIF},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.att.CheckShape()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, models.IsImageContentType(models.ContentTypeJPEG))
	assert.True(t, models.IsImageContentType(models.ContentTypePNG))
	assert.True(t, models.IsImageContentType(models.ContentTypeGIF))
	assert.False(t, models.IsImageContentType(models.ContentTypeText))
	assert.False(t, models.IsImageContentType(models.ContentTypeOctetStream))
}
