package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub/domain/user"
	"learnhub/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject string, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func authTestRouter(t *testing.T, roles ...user.Role) (*gin.Engine, *mocks.MockUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := mocks.NewMockUserRepository()
	users.Add(user.FromDTO(user.DTO{
		ID: "tutor-1", Name: "Ada", Email: "ada@example.com", Role: user.RoleTutor,
	}))

	r := gin.New()
	group := r.Group("/", AuthMiddleware(testSecret, users))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no identity")
			return
		}
		c.String(http.StatusOK, identity.ID)
	})
	return r, users
}

func fetchWhoami(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, _ := authTestRouter(t)

	// Valid token resolves the full identity from the store.
	w := fetchWhoami(r, "Bearer "+signToken(t, "tutor-1", testSecret))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a valid token, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "tutor-1" {
		t.Errorf("Expected the resolved identity, got %q", w.Body.String())
	}

	// No header, wrong scheme, garbage token, wrong key: all unauthorized.
	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
		"wrong key":      "Bearer " + signToken(t, "tutor-1", "other-secret"),
	} {
		if w := fetchWhoami(r, header); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
	}

	// A valid token for a user the store no longer knows is refused.
	if w := fetchWhoami(r, "Bearer "+signToken(t, "ghost", testSecret)); w.Code != http.StatusUnauthorized {
		t.Errorf("Unknown subject: expected 401, got %d", w.Code)
	}

	// An expired token is refused.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "tutor-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	if w := fetchWhoami(r, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Errorf("Expired token: expected 401, got %d", w.Code)
	}

	t.Log("✓ Auth middleware tests passed")
}

func TestAuthMiddlewareFreshRole(t *testing.T) {
	// The token only proves the subject; the role comes from the store.
	// Demoting the user takes effect on the next request with the same
	// token.
	r, users := authTestRouter(t, user.RoleTutor)
	token := "Bearer " + signToken(t, "tutor-1", testSecret)

	if w := fetchWhoami(r, token); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 while the user is a tutor, got %d", w.Code)
	}

	users.Add(user.FromDTO(user.DTO{
		ID: "tutor-1", Name: "Ada", Email: "ada@example.com", Role: user.RoleLearner,
	}))
	if w := fetchWhoami(r, token); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 after demotion, got %d", w.Code)
	}

	t.Log("✓ Fresh role resolution tests passed")
}

func TestRequireRoles(t *testing.T) {
	r, _ := authTestRouter(t, user.RoleAdmin)

	w := fetchWhoami(r, "Bearer "+signToken(t, "tutor-1", testSecret))
	if w.Code != http.StatusForbidden {
		t.Fatalf("Tutor hitting an admin route: expected 403, got %d", w.Code)
	}

	r, _ = authTestRouter(t, user.RoleAdmin, user.RoleTutor)
	w = fetchWhoami(r, "Bearer "+signToken(t, "tutor-1", testSecret))
	if w.Code != http.StatusOK {
		t.Errorf("Tutor hitting an admin-or-tutor route: expected 200, got %d", w.Code)
	}

	t.Log("✓ Role gate tests passed")
}
