package ports

import (
	"context"

	"github.com/supatodo/todolist-api/internal/core/domain"
)

// TokenClaims is the identity snapshot embedded in a bearer token at
// issuance time. It is not re-validated against the store until the next
// issuance.
type TokenClaims struct {
	SubjectID int64
	Email     string
	FullName  string
}

// TokenService issues and verifies signed, self-contained bearer tokens.
type TokenService interface {
	Issue(claims TokenClaims) (string, error)
	// Verify returns domain.ErrInvalidToken when the signature is invalid,
	// the token is malformed, or the expiry has passed.
	Verify(token string) (TokenClaims, error)
}

// PasswordHasher abstracts the one-way password digest so the concrete
// algorithm is swappable without touching the auth workflow.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// AuthResult pairs the stored user with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
