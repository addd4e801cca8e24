package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/audiovault/audiovault/internal/database"
	"github.com/audiovault/audiovault/internal/database/mock"
	"github.com/audiovault/audiovault/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	router   *gin.Engine
	db       *mock.MockDB
	tokens   *token.Service
	provider *Provider
}

func (s *AuthTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.db = mock.NewMockDB()
	s.tokens = token.New("test-secret", time.Minute)
	s.provider = New(s.tokens, s.db)

	s.router = gin.New()
	s.router.GET("/protected", s.provider.RequireAuth(), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	s.router.GET("/admin", s.provider.RequireAuth(), s.provider.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func (s *AuthTestSuite) request(path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthTestSuite) issueFor(email string) string {
	tok, err := s.tokens.Issue(email)
	require.NoError(s.T(), err)
	return tok
}

func (s *AuthTestSuite) TestRequireAuthSuccess() {
	s.db.SetUser(&database.User{ID: 1, Username: "alice", Email: "alice@example.com"})

	w := s.request("/protected", "Bearer "+s.issueFor("alice@example.com"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "alice@example.com")
}

func (s *AuthTestSuite) TestRequireAuthUniform401() {
	s.db.SetUser(&database.User{ID: 1, Username: "alice", Email: "alice@example.com"})

	// Missing header, malformed header, garbage token and a valid token for
	// a deleted user must all yield the identical opaque response.
	cases := map[string]string{
		"missing header":   "",
		"malformed header": "Token abc",
		"garbage token":    "Bearer not-a-jwt",
		"deleted user":     "Bearer " + s.issueFor("gone@example.com"),
	}
	for name, header := range cases {
		w := s.request("/protected", header)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code, name)
		assert.JSONEq(s.T(), `{"error":"invalid token"}`, w.Body.String(), name)
		assert.Equal(s.T(), "Bearer", w.Header().Get("WWW-Authenticate"), name)
	}
}

func (s *AuthTestSuite) TestRequireAuthStoreOutage() {
	s.db.SetUser(&database.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	tok := s.issueFor("alice@example.com")
	s.db.GetUserByEmailError = errors.New("db unreachable")

	// An unreachable store is a server fault, not an auth failure.
	w := s.request("/protected", "Bearer "+tok)
	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(s.T(), `{"error":"internal server error"}`, w.Body.String())
}

func (s *AuthTestSuite) TestRequireAdmin() {
	s.db.SetUser(&database.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	s.db.SetUser(&database.User{ID: 2, Username: "root", Email: "root@example.com", IsAdmin: true})

	w := s.request("/admin", "Bearer "+s.issueFor("alice@example.com"))
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request("/admin", "Bearer "+s.issueFor("root@example.com"))
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func TestCanAccessUser(t *testing.T) {
	admin := &database.User{ID: 1, IsAdmin: true}
	user := &database.User{ID: 2}

	assert.True(t, CanAccessUser(admin, 99))
	assert.True(t, CanAccessUser(user, 2))
	assert.False(t, CanAccessUser(user, 3))
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("bearer abc")
	assert.True(t, ok) // scheme is case-insensitive

	_, ok = bearerToken("")
	assert.False(t, ok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
}
