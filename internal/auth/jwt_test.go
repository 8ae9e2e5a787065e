package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/chaizz/lumen-Park/internal/config"
	"github.com/chaizz/lumen-Park/internal/domain"
)

const testSecret = "test-secret"

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier(&config.Config{JWTSecret: testSecret})

	t.Run("valid token", func(t *testing.T) {
		token, err := Issue(testSecret, "user-1", time.Minute)
		require.NoError(t, err)
		userID, err := v.Verify(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, "user-1", userID)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := Issue("other-secret", "user-1", time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), token)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := Issue(testSecret, "user-1", -time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), token)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("no subject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), token)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "not.a.jwt")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestBearerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := NewJWTVerifier(&config.Config{JWTSecret: testSecret})

	router := gin.New()
	router.GET("/me", Bearer(v), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	t.Run("rejects missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sets user id", func(t *testing.T) {
		token, err := Issue(testSecret, "user-7", time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-7", rec.Body.String())
	})
}
