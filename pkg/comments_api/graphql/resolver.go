package graphql

import (
	"context"

	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the GraphQL root; it delegates to the same services as the
// REST handlers.
type Resolver struct {
	comments    *services.CommentService
	attachments *services.AttachmentService
}

func NewResolver(comments *services.CommentService, attachments *services.AttachmentService) *Resolver {
	return &Resolver{comments: comments, attachments: attachments}
}

// orderFor maps the schema enum onto the repository order keys.
func orderFor(field string, desc bool) string {
	var key string
	switch field {
	case "AUTHOR_NAME", "USER_NAME":
		key = "userName"
	case "AUTHOR_EMAIL", "EMAIL":
		key = "email"
	default:
		key = "createdAt"
	}
	if desc {
		return "-" + key
	}
	return key
}

type commentsArgs struct {
	Page       int32
	PageSize   int32
	OrderField string
	Desc       bool
	ParentId   *graphql.ID
}

func (r *Resolver) Comments(ctx context.Context, args commentsArgs) (*commentListResolver, error) {
	page, perPage := int(args.Page), int(args.PageSize)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 25
	}

	var (
		list       []models.CommentResponse
		pagination models.Pagination
		err        error
	)
	if args.ParentId == nil {
		list, pagination, err = r.comments.ListComments(ctx, &models.ListCommentsParams{
			Page:    page,
			PerPage: perPage,
			Order:   orderFor(args.OrderField, args.Desc),
		})
	} else {
		list, pagination, err = r.comments.ListReplies(ctx, string(*args.ParentId), page, perPage)
	}
	if err != nil {
		return nil, err
	}
	return &commentListResolver{count: int32(pagination.TotalRecords), results: list}, nil
}

type createCommentInput struct {
	UserName   *string
	Name       *string
	Email      string
	HomePage   *string
	Text       string
	ParentId   *graphql.ID
	Captcha    string
	CaptchaKey *string
}

func (r *Resolver) CreateComment(ctx context.Context, args struct{ Input createCommentInput }) (*commentResolver, error) {
	in := args.Input

	// userName is canonical, name is the legacy alias.
	userName := deref(in.UserName)
	if userName == "" {
		userName = deref(in.Name)
	}

	var parentID *string
	if in.ParentId != nil {
		id := string(*in.ParentId)
		parentID = &id
	}

	resp, err := r.comments.CreateComment(ctx, &models.CreateCommentInput{
		UserName:   userName,
		Email:      in.Email,
		HomePage:   deref(in.HomePage),
		Text:       in.Text,
		ParentId:   parentID,
		Captcha:    in.Captcha,
		CaptchaKey: deref(in.CaptchaKey),
	}, MetaFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &commentResolver{c: *resp}, nil
}

func (r *Resolver) UploadAttachment(ctx context.Context, args struct {
	CommentId graphql.ID
	File      Upload
}) (*attachmentResolver, error) {
	defer args.File.Close()

	resp, err := r.attachments.Ingest(ctx, string(args.CommentId), args.File.File, args.File.Filename)
	if err != nil {
		return nil, err
	}
	return &attachmentResolver{a: *resp}, nil
}

type commentListResolver struct {
	count   int32
	results []models.CommentResponse
}

func (r *commentListResolver) Count() int32 { return r.count }

func (r *commentListResolver) Results() []*commentResolver {
	out := make([]*commentResolver, len(r.results))
	for i := range r.results {
		out[i] = &commentResolver{c: r.results[i]}
	}
	return out
}

type commentResolver struct {
	c models.CommentResponse
}

func (r *commentResolver) ID() graphql.ID    { return graphql.ID(r.c.Id) }
func (r *commentResolver) UserName() string  { return r.c.UserName }
func (r *commentResolver) Email() string     { return r.c.Email }
func (r *commentResolver) HomePage() *string { return optional(r.c.HomePage) }
func (r *commentResolver) TextRaw() string   { return r.c.TextRaw }
func (r *commentResolver) TextHtml() *string { return optional(r.c.TextHtml) }
func (r *commentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.c.CreatedAt}
}
func (r *commentResolver) RepliesCount() int32 { return int32(r.c.RepliesCount) }

func (r *commentResolver) ParentId() *graphql.ID {
	if r.c.ParentId == nil {
		return nil
	}
	id := graphql.ID(*r.c.ParentId)
	return &id
}

func (r *commentResolver) Attachments() []*attachmentResolver {
	out := make([]*attachmentResolver, len(r.c.Attachments))
	for i := range r.c.Attachments {
		out[i] = &attachmentResolver{a: r.c.Attachments[i]}
	}
	return out
}

type attachmentResolver struct {
	a models.AttachmentResponse
}

func (r *attachmentResolver) ID() graphql.ID       { return graphql.ID(r.a.Id) }
func (r *attachmentResolver) URL() string          { return r.a.Url }
func (r *attachmentResolver) ContentType() *string { return optional(r.a.ContentType) }
func (r *attachmentResolver) FileName() string     { return r.a.FileName }
func (r *attachmentResolver) Size() int32          { return int32(r.a.Size) }
func (r *attachmentResolver) Width() *int32        { return optionalInt(r.a.Width) }
func (r *attachmentResolver) Height() *int32       { return optionalInt(r.a.Height) }
func (r *attachmentResolver) IsImage() bool        { return r.a.IsImage }
func (r *attachmentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.a.CreatedAt}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
