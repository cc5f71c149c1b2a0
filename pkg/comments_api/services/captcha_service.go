package services

import (
	"context"
	"encoding/base64"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/captcha"
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
)

// CaptchaService issues challenges for the HTTP surface.
type CaptchaService struct {
	captcha *captcha.Captcha
}

func NewCaptchaService(c *captcha.Captcha) *CaptchaService {
	return &CaptchaService{captcha: c}
}

// NewChallenge generates a challenge and returns the key plus the rendered
// image, base64-inlined for the JSON body.
func (s *CaptchaService) NewChallenge(ctx context.Context) (*models.CaptchaResponse, error) {
	key, png, err := s.captcha.Generate(ctx)
	if err != nil {
		return nil, problem.NewInternalServerError(err.Error())
	}
	return &models.CaptchaResponse{
		Key:   key,
		Image: base64.StdEncoding.EncodeToString(png),
	}, nil
}

// TTLSeconds is the challenge lifetime, also used for the cookie max-age.
func (s *CaptchaService) TTLSeconds() int {
	return int(s.captcha.TTL().Seconds())
}
