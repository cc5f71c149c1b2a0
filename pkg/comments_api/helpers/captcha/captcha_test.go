package captcha_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"testing"
	"time"

	"github.com/dimal11/comments-api/pkg/comments_api/helpers/captcha"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptcha(ttl time.Duration) *captcha.Captcha {
	return captcha.New(captcha.NewMemoryStore(), ttl)
}

func TestGenerate(t *testing.T) {
	c := newCaptcha(time.Minute)
	key, data, err := c.Generate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	// Keys are URL-safe base64, no padding.
	_, err = base64.RawURLEncoding.DecodeString(key)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestVerify_CaseInsensitive(t *testing.T) {
	c := newCaptcha(time.Minute)
	key, err := c.Issue(context.Background(), "aB3dE")
	require.NoError(t, err)

	assert.True(t, c.Verify(context.Background(), key, "ab3de"))
}

func TestVerify_SingleUse(t *testing.T) {
	ctx := context.Background()
	c := newCaptcha(time.Minute)
	key, err := c.Issue(ctx, "xY9zQ")
	require.NoError(t, err)

	assert.True(t, c.Verify(ctx, key, "xY9zQ"))
	// Replay with the same key must fail, even with the right code.
	assert.False(t, c.Verify(ctx, key, "xY9zQ"))
}

func TestVerify_WrongCodeBurnsKey(t *testing.T) {
	ctx := context.Background()
	c := newCaptcha(time.Minute)
	key, err := c.Issue(ctx, "xY9zQ")
	require.NoError(t, err)

	assert.False(t, c.Verify(ctx, key, "wrong"))
	// The failed attempt consumed the challenge.
	assert.False(t, c.Verify(ctx, key, "xY9zQ"))
}

func TestVerify_Expired(t *testing.T) {
	ctx := context.Background()
	c := newCaptcha(20 * time.Millisecond)
	key, err := c.Issue(ctx, "aB3dE")
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	assert.False(t, c.Verify(ctx, key, "aB3dE"))
}

func TestVerify_EmptyInputs(t *testing.T) {
	ctx := context.Background()
	c := newCaptcha(time.Minute)
	key, err := c.Issue(ctx, "aB3dE")
	require.NoError(t, err)

	assert.False(t, c.Verify(ctx, "", "aB3dE"))
	assert.False(t, c.Verify(ctx, key, ""))
	assert.False(t, c.Verify(ctx, "no-such-key", "aB3dE"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := captcha.NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	got, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := captcha.NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
