package models

import "time"

// CreateCommentInput is the payload for POST /comments. CaptchaKey is
// optional: when absent the captcha_key cookie is the fallback.
type CreateCommentInput struct {
	UserName   string  `json:"userName" binding:"required,alphanum,max=30"`
	Email      string  `json:"email" binding:"required,email"`
	HomePage   string  `json:"homePage,omitempty" binding:"omitempty,url"`
	Text       string  `json:"text" binding:"required"`
	ParentId   *string `json:"parentId,omitempty"`
	Captcha    string  `json:"captcha" binding:"required"`
	CaptchaKey string  `json:"captchaKey,omitempty"`
}

// RequestMeta carries per-request context the services need but tonic does
// not bind: client address, user agent and the captcha cookie fallback.
type RequestMeta struct {
	IP               string
	UserAgent        string
	CaptchaKeyCookie string
}

type AttachmentResponse struct {
	Id          string    `json:"id"`
	Url         string    `json:"url"`
	ContentType string    `json:"contentType,omitempty"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"size"`
	Width       *int      `json:"width,omitempty"`
	Height      *int      `json:"height,omitempty"`
	IsImage     bool      `json:"isImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CommentResponse struct {
	Id           string               `json:"id"`
	UserName     string               `json:"userName"`
	Email        string               `json:"email"`
	HomePage     string               `json:"homePage,omitempty"`
	ParentId     *string              `json:"parentId,omitempty"`
	TextRaw      string               `json:"textRaw"`
	TextHtml     string               `json:"textHtml"`
	CreatedAt    time.Time            `json:"createdAt"`
	RepliesCount int64                `json:"repliesCount"`
	Attachments  []AttachmentResponse `json:"attachments"`
}

type CaptchaResponse struct {
	Key   string `json:"key"`
	Image string `json:"image"` // base64-encoded PNG
}

type UserResponse struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	HomePage  string    `json:"homePage,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
