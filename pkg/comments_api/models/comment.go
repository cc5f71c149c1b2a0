package models

import "time"

// User is the author row created alongside every comment.
type User struct {
	Id        string    `json:"id" gorm:"column:id;primaryKey"`
	Name      string    `json:"name" gorm:"index"`
	Email     string    `json:"email" gorm:"index"`
	HomePage  string    `json:"homePage,omitempty"`
	IP        string    `json:"-" gorm:"column:ip"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	Id        string   `json:"id" gorm:"column:id;primaryKey"`
	ParentID  *string  `json:"parentId,omitempty" gorm:"column:parent_id;index:idx_comments_parent_created,priority:1"`
	Parent    *Comment `json:"-" gorm:"foreignKey:ParentID"`
	AuthorID  string   `json:"-" gorm:"column:author_id"`
	Author    *User    `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	TextRaw   string   `json:"textRaw"`
	TextHtml  string   `json:"textHtml"`
	IP        string   `json:"-" gorm:"column:ip"`
	UserAgent string   `json:"-"`

	CreatedAt time.Time `json:"createdAt" gorm:"index;index:idx_comments_parent_created,priority:2"`

	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:CommentID"`

	// Derived in list queries, never stored.
	RepliesCount int64 `json:"repliesCount" gorm:"->;-:migration"`
}

type Pagination struct {
	Next           *int `json:"next,omitempty"`
	Previous       *int `json:"previous,omitempty"`
	CurrentPage    int  `json:"currentPage"`
	RecordsPerPage int  `json:"recordsPerPage"`
	TotalPages     int  `json:"totalPages"`
	TotalRecords   int  `json:"totalRecords"`
}
