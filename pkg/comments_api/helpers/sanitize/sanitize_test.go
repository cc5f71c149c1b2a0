package sanitize_test

import (
	"testing"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/sanitize"
	"github.com/stretchr/testify/assert"
)

func TestCommentHTML_StripsDisallowedTags(t *testing.T) {
	out := sanitize.CommentHTML(`hi <script>alert(1)</script><img src=x> <strong>there</strong>`)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "<strong>there</strong>")
}

func TestCommentHTML_KeepsAllowedAnchor(t *testing.T) {
	out := sanitize.CommentHTML(`<a href="https://example.com" title="t">link</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `title="t"`)
}

func TestCommentHTML_DropsUnsafeScheme(t *testing.T) {
	out := sanitize.CommentHTML(`<a href="javascript:alert(1)">x</a>`)
	assert.NotContains(t, out, "javascript:")
}

func TestCommentHTML_LinkifiesBareURL(t *testing.T) {
	out := sanitize.CommentHTML("see https://example.com/page for details")
	assert.Contains(t, out, `<a href="https://example.com/page">https://example.com/page</a>`)
}

func TestCommentHTML_LinkifiesEmail(t *testing.T) {
	out := sanitize.CommentHTML("write to me@example.com please")
	assert.Contains(t, out, `<a href="mailto:me@example.com">me@example.com</a>`)
}

func TestCommentHTML_Empty(t *testing.T) {
	assert.Equal(t, "", sanitize.CommentHTML(""))
	assert.Equal(t, "", sanitize.CommentHTML("   \n\t"))
}
