package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/supatodo/todolist-api/internal/core/ports"
	"github.com/supatodo/todolist-api/internal/core/service"
)

func newAuthedRequest(token string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req, httptest.NewRecorder()
}

func runAuth(t *testing.T, tokens ports.TokenService, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req, rec := newAuthedRequest(header)
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(tokens)(next)(c)
	return c, err
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	_, err := runAuth(t, tokens, "")
	assertUnauthorized(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)

	for _, header := range []string{"bearer-token", "Basic abc123", "Bearer"} {
		_, err := runAuth(t, tokens, header)
		assertUnauthorized(t, err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	_, err := runAuth(t, tokens, "Bearer not-a-real-token")
	assertUnauthorized(t, err)
}

func TestAuth_WrongSigningKey(t *testing.T) {
	issuer := service.NewTokenService("other-secret", time.Hour)
	token, err := issuer.Issue(ports.TokenClaims{SubjectID: 1, Email: "a@b.c", FullName: "A"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tokens := service.NewTokenService("secret", time.Hour)
	_, authErr := runAuth(t, tokens, "Bearer "+token)
	assertUnauthorized(t, authErr)
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue(ports.TokenClaims{SubjectID: 42, Email: "alice@example.com", FullName: "Alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	c, authErr := runAuth(t, tokens, "Bearer "+token)
	if authErr != nil {
		t.Fatalf("middleware returned error: %v", authErr)
	}

	if id, _ := c.Get("user_id").(int64); id != 42 {
		t.Fatalf("expected user_id 42, got %v", c.Get("user_id"))
	}
	if email, _ := c.Get("email").(string); email != "alice@example.com" {
		t.Fatalf("unexpected email claim: %v", c.Get("email"))
	}
	if name, _ := c.Get("fullname").(string); name != "Alice" {
		t.Fatalf("unexpected fullname claim: %v", c.Get("fullname"))
	}
}

func TestAuth_CaseInsensitiveScheme(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue(ports.TokenClaims{SubjectID: 7, Email: "b@c.d", FullName: "B"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, authErr := runAuth(t, tokens, "bearer "+token)
	if authErr != nil {
		t.Fatalf("lowercase scheme rejected: %v", authErr)
	}
}
