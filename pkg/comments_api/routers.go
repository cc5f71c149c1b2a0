package comments_api

import (
	"net/http"

	"github.com/dimal11/comments-api/pkg/comments_api/handler"
	"github.com/dimal11/comments-api/pkg/comments_api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"The API version of the response",
		"", // empty string means: primitive string in the spec
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil, // no inline schema
		nil, // no content media type
		nil, // no extra headers
	)
)

// Controllers bundles everything NewRouter mounts.
type Controllers struct {
	Comments    *handler.CommentsAPIController
	Attachments *handler.AttachmentsAPIController
	Captcha     *handler.CaptchaAPIController
	Admin       *handler.AdminAPIController
	GraphQL     http.Handler
	MediaDir    string
}

func NewRouter(apiVersion string, c Controllers) *fizz.Fizz {
	g := gin.Default()
	g.Use(APIVersionMiddleware(apiVersion))
	f := fizz.NewFromEngine(g)

	info := &openapi.Info{
		Title:       "Comments API v1",
		Description: "Nested comments with attachments and CAPTCHA",
		Version:     apiVersion,
	}

	root := f.Group("/v1", "Comments v1", "Comments API v1 routes")

	read := root.Group("", "Read", "Read-only endpoints")
	read.GET("/comments",
		[]fizz.OperationOption{
			fizz.Summary("List top-level comments"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(c.Comments.ListComments, 200),
	)

	read.GET("/comments/:id",
		[]fizz.OperationOption{
			fizz.Summary("Retrieve a single comment"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(c.Comments.RetrieveComment, 200),
	)

	read.GET("/comments/:id/replies",
		[]fizz.OperationOption{
			fizz.Summary("List replies of a comment"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(c.Comments.ListReplies, 200),
	)

	read.GET("/captcha",
		[]fizz.OperationOption{
			fizz.Summary("Issue a new CAPTCHA challenge"),
			apiVersionHeader,
		},
		tonic.Handler(c.Captcha.NewChallenge, 200),
	)

	write := root.Group("", "Write", "Comment and attachment creation")
	write.POST("/comments",
		[]fizz.OperationOption{
			fizz.Summary("Create a comment (CAPTCHA required)"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(c.Comments.CreateComment, 201),
	)

	write.POST("/comments/:id/attachments",
		[]fizz.OperationOption{
			fizz.Summary("Upload an attachment for a comment"),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(c.Attachments.UploadAttachment, 201),
	)

	admin := root.Group("/admin", "Admin", "Back-office views", middleware.RequireAccess("comments:admin"))
	admin.GET("/comments",
		[]fizz.OperationOption{
			fizz.Summary("Search and filter all comments"),
			apiVersionHeader,
		},
		tonic.Handler(c.Admin.SearchComments, 200),
	)

	admin.GET("/users",
		[]fizz.OperationOption{
			fizz.Summary("List and search comment authors"),
			apiVersionHeader,
		},
		tonic.Handler(c.Admin.ListUsers, 200),
	)

	// GraphQL and static media bypass fizz: multipart bodies have no OAS
	// schema worth generating.
	if c.GraphQL != nil {
		f.Engine().POST("/graphql", gin.WrapH(c.GraphQL))
	}
	if c.MediaDir != "" {
		f.Engine().Static("/media", c.MediaDir)
	}

	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
