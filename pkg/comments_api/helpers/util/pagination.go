package util

import (
	"fmt"
	"strconv"

	"github.com/dimal11/comments-api/pkg/comments_api/models"
	"github.com/gin-gonic/gin"
)

// SetPaginationHeaders exposes pagination metadata as response headers, with
// a Link header for next/prev navigation.
func SetPaginationHeaders(ctx *gin.Context, p models.Pagination) {
	ctx.Header("X-Total-Count", strconv.Itoa(p.TotalRecords))
	ctx.Header("X-Total-Pages", strconv.Itoa(p.TotalPages))
	ctx.Header("X-Current-Page", strconv.Itoa(p.CurrentPage))
	ctx.Header("X-Per-Page", strconv.Itoa(p.RecordsPerPage))

	link := ""
	if p.Next != nil {
		link += fmt.Sprintf(`<%s?page=%d&perPage=%d>; rel="next"`, ctx.FullPath(), *p.Next, p.RecordsPerPage)
	}
	if p.Previous != nil {
		if link != "" {
			link += ", "
		}
		link += fmt.Sprintf(`<%s?page=%d&perPage=%d>; rel="prev"`, ctx.FullPath(), *p.Previous, p.RecordsPerPage)
	}
	if link != "" {
		ctx.Header("Link", link)
	}
}
