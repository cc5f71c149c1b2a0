package handler

import (
	"net/http"

	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
	"github.com/gin-gonic/gin"
)

// CaptchaAPIController issues challenge images.
type CaptchaAPIController struct {
	Service *services.CaptchaService

	// Secure marks the captcha_key cookie Secure; off in debug mode only.
	Secure bool
}

func NewCaptchaAPIController(s *services.CaptchaService, secure bool) *CaptchaAPIController {
	return &CaptchaAPIController{Service: s, Secure: secure}
}

// NewChallenge handles GET /captcha. The key travels both in the JSON body
// and as a short-lived http-only cookie, so plain HTML forms work too.
func (c *CaptchaAPIController) NewChallenge(ctx *gin.Context) (*models.CaptchaResponse, error) {
	resp, err := c.Service.NewChallenge(ctx.Request.Context())
	if err != nil {
		return nil, err
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie("captcha_key", resp.Key, c.Service.TTLSeconds(), "/", "", c.Secure, true)
	return resp, nil
}
