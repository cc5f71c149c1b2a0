package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/dimal11/comments-api/pkg/comments_api/handler"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/captcha"
	problem "github.com/dimal11/comments-api/pkg/comments_api/helpers/problem"
	"github.com/dimal11/comments-api/pkg/comments_api/helpers/storage"
	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/dimal11/comments-api/pkg/jobs"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/loopfz/gadgeto/tonic"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	api "github.com/dimal11/comments-api/pkg/comments_api"
	"github.com/dimal11/comments-api/pkg/comments_api/database"
	gql "github.com/dimal11/comments-api/pkg/comments_api/graphql"
	"github.com/dimal11/comments-api/pkg/comments_api/repositories"
	"github.com/dimal11/comments-api/pkg/comments_api/services"
)

const apiVersion = "1.0.0"

func invalidParamsFromBinding(err error, sample any) []problem.InvalidParam {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}

	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		// StructField -> json tag
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
				name = strings.Split(tag, ",")[0]
			}
		}
		out = append(out, problem.InvalidParam{
			Name:   name,
			Reason: humanReason(fe),
		})
	}
	return out
}

func humanReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL (e.g. https://...)"
	case "alphanum":
		return "may contain latin letters and digits only"
	default:
		return fe.Error()
	}
}

func init() {
	tonic.SetErrorHook(func(c *gin.Context, err error) (int, interface{}) {
		// 1) Bind/validate errors -> 400 with the offending params
		var be tonic.BindError
		if errors.As(err, &be) || isValidationErr(err) {
			invalids := invalidParamsFromBinding(err, models.CreateCommentInput{})
			apiErr := problem.NewBadRequest("body", "Invalid input", invalids...)
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// 2) Own APIError -> pass-through
		if apiErr, ok := err.(problem.APIError); ok {
			c.Header("Content-Type", "application/problem+json")
			return apiErr.Status, apiErr
		}

		// 3) Everything else -> 500
		internal := problem.NewInternalServerError(err.Error())
		c.Header("Content-Type", "application/problem+json")
		return internal.Status, internal
	})
}

func isValidationErr(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func main() {
	_ = godotenv.Load()

	dbcon := "postgres://" +
		os.Getenv("DB_USERNAME") + ":" +
		os.Getenv("DB_PASSWORD") + "@" +
		os.Getenv("DB_HOSTNAME") + "/" +
		os.Getenv("DB_DBNAME") + "?sslmode=" +
		envOr("DB_SSLMODE", "disable")
	db, err := database.Connect(dbcon)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var store captcha.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		rs, err := captcha.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		store = rs
	} else {
		log.Println("[WARN] REDIS_ADDR not set; CAPTCHA challenges are kept in process memory")
		store = captcha.NewMemoryStore()
	}
	challenges := captcha.New(store, captcha.DefaultTTL)

	uploadDir := envOr("UPLOAD_DIR", "./uploads")
	files := storage.New(uploadDir, envOr("MEDIA_BASE_URL", "/media"))

	repo := repositories.NewCommentRepository(db)
	commentService := services.NewCommentService(repo, challenges, files)
	attachmentService := services.NewAttachmentService(repo, files)
	captchaService := services.NewCaptchaService(challenges)

	jobs.ScheduleDailyCleanup(context.Background(), attachmentService)

	secureCookies := gin.Mode() == gin.ReleaseMode
	router := api.NewRouter(apiVersion, api.Controllers{
		Comments:    handler.NewCommentsAPIController(commentService),
		Attachments: handler.NewAttachmentsAPIController(attachmentService),
		Captcha:     handler.NewCaptchaAPIController(captchaService, secureCookies),
		Admin:       handler.NewAdminAPIController(commentService),
		GraphQL:     gql.NewHandler(gql.NewResolver(commentService, attachmentService)),
		MediaDir:    uploadDir,
	})

	port := envOr("PORT", "8080")
	log.Println("Server is running on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
