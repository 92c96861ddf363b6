package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/supatodo/todolist-api/internal/core/domain"
	"github.com/supatodo/todolist-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the wire shape of the JWT payload. Sub shadows the
// registered subject claim so it is emitted as an integer id rather than
// a string.
type tokenClaims struct {
	Sub      int64  `json:"sub"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens with a fixed
// time-to-live. Verification is pure computation; no I/O, no clock-skew
// leeway.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Sub:      claims.SubjectID,
		Email:    claims.Email,
		Fullname: claims.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return t.SignedString(s.secret)
}

func (s *TokenService) Verify(token string) (ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	c, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}
	return ports.TokenClaims{
		SubjectID: c.Sub,
		Email:     c.Email,
		FullName:  c.Fullname,
	}, nil
}
