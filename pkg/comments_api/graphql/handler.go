package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dimal11/comments-api/pkg/comments_api/models"
	graphql "github.com/graph-gophers/graphql-go"
)

type ctxKey int

const metaKey ctxKey = iota

// WithRequestMeta stores the per-request metadata the mutations need
// (client address, user agent, captcha cookie fallback).
func WithRequestMeta(ctx context.Context, meta models.RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey, meta)
}

func MetaFromContext(ctx context.Context) models.RequestMeta {
	meta, _ := ctx.Value(metaKey).(models.RequestMeta)
	return meta
}

// Handler serves POST /graphql: plain JSON requests and multipart requests
// following the graphql-multipart-request-spec (operations + map + files).
type Handler struct {
	schema *graphql.Schema
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{schema: graphql.MustParseSchema(Schema, resolver)}
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

const maxUploadMemory = 32 << 20

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := parseMultipart(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	ctx := WithRequestMeta(r.Context(), metaFromRequest(r))
	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_ = json.NewEncoder(w).Encode(resp)
}

// parseMultipart reads the operations/map form fields and substitutes the
// uploaded file headers into the variables map, per the multipart spec.
func parseMultipart(r *http.Request, req *request) error {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(r.FormValue("operations")), req); err != nil {
		return err
	}

	var fileMap map[string][]string
	if err := json.Unmarshal([]byte(r.FormValue("map")), &fileMap); err != nil {
		return err
	}

	for fileKey, paths := range fileMap {
		headers := r.MultipartForm.File[fileKey]
		if len(headers) == 0 {
			continue
		}
		for _, path := range paths {
			setVariable(req.Variables, path, headers[0])
		}
	}
	return nil
}

// setVariable assigns value at a dotted path like "variables.file" or
// "variables.input.file".
func setVariable(vars map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || parts[0] != "variables" {
		return
	}
	m := vars
	for _, p := range parts[1 : len(parts)-1] {
		next, ok := m[p].(map[string]interface{})
		if !ok {
			return
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func metaFromRequest(r *http.Request) models.RequestMeta {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	} else {
		ip = r.RemoteAddr
		if i := strings.LastIndex(ip, ":"); i > 0 {
			ip = ip[:i]
		}
	}

	var cookieKey string
	if c, err := r.Cookie("captcha_key"); err == nil {
		cookieKey = c.Value
	}

	return models.RequestMeta{
		IP:               ip,
		UserAgent:        r.UserAgent(),
		CaptchaKeyCookie: cookieKey,
	}
}
