package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"combi_rides/internal/models"
)

var testSecret = []byte("test-secret")

func protectedEngine(required models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/p")
	if required != "" {
		group.Use(RequireRole(testSecret, required))
	} else {
		group.Use(RequireAuth(testSecret))
	}
	group.GET("/whoami", func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "role": string(p.Role)})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := protectedEngine("")

	if w := doGet(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
	if w := doGet(r, "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", w.Code)
	}

	token, err := GenerateToken(testSecret, 42, models.RoleDriver)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w := doGet(r, token); w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	other, err := GenerateToken([]byte("wrong-secret"), 42, models.RoleDriver)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w := doGet(r, other); w.Code != http.StatusUnauthorized {
		t.Fatalf("foreign signature: expected 401, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedEngine(models.RoleDriver)

	driver, err := GenerateToken(testSecret, 7, models.RoleDriver)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	passenger, err := GenerateToken(testSecret, 8, models.RolePassenger)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if w := doGet(r, driver); w.Code != http.StatusOK {
		t.Fatalf("driver: expected 200, got %d", w.Code)
	}
	if w := doGet(r, passenger); w.Code != http.StatusForbidden {
		t.Fatalf("passenger on driver route: expected 403, got %d", w.Code)
	}
}
