package models

// Order values accepted by the public list endpoint. Unknown values fall
// back to "-createdAt".
var CommentOrders = map[string]string{
	"createdAt":  "created_at ASC",
	"-createdAt": "created_at DESC",
	"userName":   "users.name ASC",
	"-userName":  "users.name DESC",
	"email":      "users.email ASC",
	"-email":     "users.email DESC",
}

const DefaultOrder = "-createdAt"

type ListCommentsParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"perPage"`
	Order   string `query:"order"`
}

type CommentParams struct {
	Id string `path:"id"`
}

type ListRepliesParams struct {
	Id      string `path:"id"`
	Page    int    `query:"page"`
	PerPage int    `query:"perPage"`
}

// AdminListCommentsParams backs the back-office list/search/filter view.
type AdminListCommentsParams struct {
	Page     int     `query:"page"`
	PerPage  int     `query:"perPage"`
	Order    string  `query:"order"`
	Q        *string `query:"q"`
	UserName *string `query:"userName"`
	Email    *string `query:"email"`
}

type AdminListUsersParams struct {
	Page    int     `query:"page"`
	PerPage int     `query:"perPage"`
	Q       *string `query:"q"`
}
