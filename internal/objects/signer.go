package objects

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// URLSigner mints and verifies HMAC-signed, time-limited object URLs of the
// form baseURL/key?expires=unix&signature=base64url(HMAC(key|expires)).
type URLSigner struct {
	secret  []byte
	baseURL string
	now     func() time.Time
}

var _ interfaces.ObjectPresigner = (*URLSigner)(nil)

type SignerOption func(*URLSigner)

// WithSignerClock overrides the clock, for expiry tests.
func WithSignerClock(now func() time.Time) SignerOption {
	return func(s *URLSigner) {
		if now != nil {
			s.now = now
		}
	}
}

func NewURLSigner(secret []byte, baseURL string, opts ...SignerOption) (*URLSigner, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("objects: signer secret is required")
	}
	signer := &URLSigner{
		secret:  secret,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(signer)
	}
	return signer, nil
}

func (s *URLSigner) SignedURL(key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", ErrKeyRequired
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	expires := s.now().Add(ttl).Unix()

	params := url.Values{}
	params.Set("expires", strconv.FormatInt(expires, 10))
	params.Set("signature", s.sign(key, expires))
	return s.baseURL + "/" + key + "?" + params.Encode(), nil
}

// Verify checks a presented key/expiry/signature triple. Used by the handler
// serving private objects.
func (s *URLSigner) Verify(key string, expires int64, signature string) error {
	if !hmac.Equal([]byte(signature), []byte(s.sign(key, expires))) {
		return ErrSignatureInvalid
	}
	if s.now().Unix() > expires {
		return ErrURLExpired
	}
	return nil
}

// VerifyURL validates a full signed URL produced by SignedURL.
func (s *URLSigner) VerifyURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrSignatureInvalid
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if idx := strings.LastIndexByte(key, '/'); idx >= 0 {
		key = key[idx+1:]
	}
	expires, err := strconv.ParseInt(parsed.Query().Get("expires"), 10, 64)
	if err != nil {
		return "", ErrSignatureInvalid
	}
	if err := s.Verify(key, expires, parsed.Query().Get("signature")); err != nil {
		return "", err
	}
	return key, nil
}

func (s *URLSigner) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", key, expires)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
