// Package captcha implements the challenge/verification protocol: a short
// human-solvable code rendered as an image, tied to a single-use key in an
// external key-value store.
package captcha

import (
	"context"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math/rand"
	"strings"
	"time"
)

const (
	// CodeLength is the number of characters the user has to type.
	CodeLength = 5

	// DefaultTTL is how long a challenge stays valid once issued.
	DefaultTTL = 300 * time.Second

	keyBytes  = 18
	keyPrefix = "captcha:"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Captcha issues and verifies challenges against a Store.
type Captcha struct {
	store Store
	ttl   time.Duration
}

func New(store Store, ttl time.Duration) *Captcha {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Captcha{store: store, ttl: ttl}
}

// TTL reports the configured challenge lifetime.
func (c *Captcha) TTL() time.Duration { return c.ttl }

// Generate creates a fresh challenge: a random code rendered as a PNG and a
// high-entropy URL-safe key the client must present on verification. Only a
// hash of the lower-cased code is stored, never the plaintext.
func (c *Captcha) Generate(ctx context.Context) (key string, png []byte, err error) {
	code := randomCode(CodeLength)

	key, err = c.Issue(ctx, code)
	if err != nil {
		return "", nil, err
	}

	png, err = Render(code)
	if err != nil {
		return "", nil, err
	}
	return key, png, nil
}

// Issue registers a challenge for a known code and returns the fresh key.
// Generate is the normal entry point; Issue exists so callers can seed a
// deterministic challenge.
func (c *Captcha) Issue(ctx context.Context, code string) (string, error) {
	raw := make([]byte, keyBytes)
	if _, err := crand.Read(raw); err != nil {
		return "", err
	}
	key := base64.RawURLEncoding.EncodeToString(raw)

	if err := c.store.Set(ctx, keyPrefix+key, hashCode(code), c.ttl); err != nil {
		return "", err
	}
	return key, nil
}

// Verify consumes the challenge for key exactly once. The stored entry is
// deleted whether or not the code matches, so a replay with the same key
// always fails. Comparison is case-insensitive.
func (c *Captcha) Verify(ctx context.Context, key, code string) bool {
	if key == "" || code == "" {
		return false
	}

	stored, ok, err := c.store.Get(ctx, keyPrefix+key)
	// Single use: burn the key even on a miss or a wrong code.
	_ = c.store.Delete(ctx, keyPrefix+key)
	if err != nil || !ok {
		return false
	}

	code = strings.TrimSpace(code)
	return stored == hashCode(code) || stored == hashCodeRaw(code)
}

// randomCode draws from math/rand: challenges are low-security by contract,
// the capability token is the crypto-random key, not the code.
func randomCode(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

func hashCode(code string) string {
	return hashCodeRaw(strings.ToLower(code))
}

func hashCodeRaw(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
