package users

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultSessionTTL bounds how long an issued session token stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

// HMACTokenIssuer mints session tokens of the form
// base64url(subject:expiry) "." base64url(HMAC-SHA256(payload)).
type HMACTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*HMACTokenIssuer)

// WithTokenTTL overrides the session lifetime.
func WithTokenTTL(ttl time.Duration) TokenOption {
	return func(t *HMACTokenIssuer) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// WithTokenClock overrides the clock, for expiry tests.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(t *HMACTokenIssuer) {
		if now != nil {
			t.now = now
		}
	}
}

func NewHMACTokenIssuer(secret []byte, opts ...TokenOption) (*HMACTokenIssuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("users: token secret is required")
	}
	issuer := &HMACTokenIssuer{
		secret: secret,
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

var _ interfaces.TokenIssuer = (*HMACTokenIssuer)(nil)

func (t *HMACTokenIssuer) Issue(ctx context.Context, subject string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("users: token subject is required")
	}
	expiry := t.now().Add(t.ttl).Unix()
	payload := subject + ":" + strconv.FormatInt(expiry, 10)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + t.sign(payload), nil
}

func (t *HMACTokenIssuer) Verify(ctx context.Context, token string) (string, error) {
	encoded, signature, found := strings.Cut(token, ".")
	if !found {
		return "", ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	payload := string(raw)
	if !hmac.Equal([]byte(signature), []byte(t.sign(payload))) {
		return "", ErrInvalidToken
	}

	subject, expiryRaw, found := cutLast(payload, ':')
	if !found {
		return "", ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(expiryRaw, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if t.now().Unix() > expiry {
		return "", ErrTokenExpired
	}
	return subject, nil
}

func (t *HMACTokenIssuer) sign(payload string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func cutLast(s string, sep byte) (string, string, bool) {
	idx := strings.LastIndexByte(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}
