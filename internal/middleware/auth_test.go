package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, role string, expired bool) string {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}
	claims := JWTClaims{
		UserID:   1,
		Username: "admin",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", JWTAuth(testSecret), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetClaims(c).Username})
	})
	return r
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := newProtectedRouter()
	w := request(r, signToken(t, testSecret, "admin", false))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	r := newProtectedRouter()

	assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, signToken(t, "other-secret", "admin", false)).Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, signToken(t, testSecret, "admin", true)).Code)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	r := newProtectedRouter()
	w := request(r, signToken(t, testSecret, "employee", false))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
