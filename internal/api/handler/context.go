package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxSubject extracts the verified subject id injected by the Auth
// middleware. A zero or missing id means the middleware did not run, which
// is a 401 rather than a 500: the route was reachable without auth.
func ctxSubject(c echo.Context) (int64, error) {
	id, _ := c.Get("user_id").(int64)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
