// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	jwtutil "libraryservice/util/jwt"
)

// ContextKey is where the auth middleware stores the verified claims.
const ContextKey = "user"

func ClaimsFromContext(c echo.Context) (*jwtutil.Claims, error) {
	claims, ok := c.Get(ContextKey).(*jwtutil.Claims)
	if !ok || claims == nil {
		return nil, errors.New("no jwt claims in context")
	}
	return claims, nil
}

func UserIDFromContext(c echo.Context) (int64, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

// IsStaff is false for anonymous requests.
func IsStaff(c echo.Context) bool {
	claims, err := ClaimsFromContext(c)
	return err == nil && claims.IsStaff
}
