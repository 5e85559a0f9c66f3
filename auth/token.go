package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/namishh/bubble/config"
)

const resetTokenType = "password_reset"

// Verification failures, distinguished for logging only. Callers collapse
// all of them into one invalid-token outcome.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")
)

type resetClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies the signed, time-limited tokens used for
// password recovery. Tokens are self-contained; nothing is persisted.
// Safe for concurrent use.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret []byte, cfg config.TokenConfig) *TokenCodec {
	return &TokenCodec{
		secret: secret,
		issuer: cfg.Issuer,
		ttl:    cfg.ResetTTL,
		now:    time.Now,
	}
}

// WithClock replaces the codec's time source. Tests use this to move past
// the expiry window.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *c
	clone.now = now
	return &clone
}

// Issue signs a token carrying userID and the issue time.
func (c *TokenCodec) Issue(userID uint) (string, error) {
	now := c.now()

	claims := &resetClaims{
		TokenType: resetTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign reset token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id a valid token was issued for. The returned
// error classifies the failure; whether that id still resolves to a user is
// the caller's concern.
func (c *TokenCodec) Verify(tokenString string) (uint, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return 0, ErrTokenMalformed
	}

	claims := &resetClaims{}
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}

	if !parsed.Valid || !strings.EqualFold(claims.TokenType, resetTokenType) {
		return 0, ErrTokenMalformed
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrTokenMalformed
	}

	return uint(id), nil
}
