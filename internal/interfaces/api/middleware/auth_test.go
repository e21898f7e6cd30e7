package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func serve(t *testing.T, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	var seen string
	e.GET("/me", func(c echo.Context) error {
		id, err := UserID(c)
		require.NoError(t, err)
		seen = id
		return c.NoContent(http.StatusNoContent)
	}, JWT(secret))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWT_Valid(t *testing.T) {
	token, err := GenerateToken("42", secret, time.Hour)
	require.NoError(t, err)

	rec, seen := serve(t, "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "42", seen)
}

func TestJWT_UserIDClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u-7"}).SignedString(secret)
	require.NoError(t, err)

	rec, seen := serve(t, "bearer "+token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-7", seen)
}

func TestJWT_Rejected(t *testing.T) {
	expired, err := GenerateToken("42", secret, -time.Minute)
	require.NoError(t, err)
	wrongKey, err := GenerateToken("42", []byte("other"), time.Hour)
	require.NoError(t, err)
	noIdentity, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString(secret)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":     "",
		"not bearer":  "Basic abc",
		"garbage":     "Bearer not-a-token",
		"expired":     "Bearer " + expired,
		"wrong key":   "Bearer " + wrongKey,
		"no identity": "Bearer " + noIdentity,
	} {
		rec, _ := serve(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}
