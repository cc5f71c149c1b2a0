package repositories

import (
	"context"
	"errors"
	"math"

	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"gorm.io/gorm"
)

const repliesCountSelect = "comments.*, (SELECT COUNT(*) FROM comments c WHERE c.parent_id = comments.id) AS replies_count"

type CommentRepository interface {
	SaveCommentWithAuthor(ctx context.Context, author *models.User, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetComments(ctx context.Context, page, perPage int, order string, parentID *string) ([]models.Comment, models.Pagination, error)
	SearchComments(ctx context.Context, p *models.AdminListCommentsParams) ([]models.Comment, models.Pagination, error)
	SaveAttachment(ctx context.Context, att *models.Attachment) error
	AttachmentPaths(ctx context.Context) ([]string, error)
	GetUsers(ctx context.Context, page, perPage int, q *string) ([]models.User, models.Pagination, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) SaveCommentWithAuthor(ctx context.Context, author *models.User, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(author).Error; err != nil {
			return err
		}
		comment.AuthorID = author.Id
		return tx.Create(comment).Error
	})
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Select(repliesCountSelect).
		Preload("Author").
		Preload("Attachments").
		First(&comment, "comments.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetComments(ctx context.Context, page, perPage int, order string, parentID *string) ([]models.Comment, models.Pagination, error) {
	q := r.baseQuery(ctx)
	if parentID == nil {
		q = q.Where("comments.parent_id IS NULL")
	} else {
		q = q.Where("comments.parent_id = ?", *parentID)
	}
	return r.paginate(q, page, perPage, orderClause(order))
}

func (r *commentRepository) SearchComments(ctx context.Context, p *models.AdminListCommentsParams) ([]models.Comment, models.Pagination, error) {
	q := r.baseQuery(ctx)
	if p.Q != nil && *p.Q != "" {
		like := "%" + *p.Q + "%"
		q = q.Where("users.name LIKE ? OR users.email LIKE ? OR comments.text_raw LIKE ?", like, like, like)
	}
	if p.UserName != nil && *p.UserName != "" {
		q = q.Where("users.name = ?", *p.UserName)
	}
	if p.Email != nil && *p.Email != "" {
		q = q.Where("users.email = ?", *p.Email)
	}
	return r.paginate(q, p.Page, p.PerPage, orderClause(p.Order))
}

func (r *commentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Joins("JOIN users ON users.id = comments.author_id").
		Select(repliesCountSelect).
		Preload("Author").
		Preload("Attachments")
}

func (r *commentRepository) paginate(q *gorm.DB, page, perPage int, order string) ([]models.Comment, models.Pagination, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	var comments []models.Comment
	err := q.Order(order).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&comments).Error
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	pagination := models.Pagination{
		CurrentPage:    page,
		RecordsPerPage: perPage,
		TotalPages:     totalPages,
		TotalRecords:   int(total),
	}
	if page < totalPages {
		next := page + 1
		pagination.Next = &next
	}
	if page > 1 {
		prev := page - 1
		pagination.Previous = &prev
	}

	return comments, pagination, nil
}

func orderClause(order string) string {
	if clause, ok := models.CommentOrders[order]; ok {
		return clause
	}
	return models.CommentOrders[models.DefaultOrder]
}

func (r *commentRepository) SaveAttachment(ctx context.Context, att *models.Attachment) error {
	if err := att.CheckShape(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *commentRepository) AttachmentPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Model(&models.Attachment{}).Pluck("file_path", &paths).Error
	return paths, err
}

func (r *commentRepository) GetUsers(ctx context.Context, page, perPage int, q *string) ([]models.User, models.Pagination, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if q != nil && *q != "" {
		like := "%" + *q + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&users).Error
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return users, models.Pagination{
		CurrentPage:    page,
		RecordsPerPage: perPage,
		TotalPages:     totalPages,
		TotalRecords:   int(total),
	}, nil
}
