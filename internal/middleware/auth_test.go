package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// stubAuthService accepts exactly one token string.
type stubAuthService struct {
	token string
	actor models.Actor
}

func (s *stubAuthService) ParseAccessToken(tokenString string) (models.Actor, error) {
	if tokenString == s.token {
		return s.actor, nil
	}
	return models.Actor{}, errs.ErrUnauthenticated
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return models.User{}, errs.ErrUnauthenticated
}

func (s *stubAuthService) GenerateTokens(ctx context.Context, user models.User) (string, string, error) {
	return "", "", nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, int64, error) {
	return "", "", 0, errs.ErrUnauthenticated
}

func (s *stubAuthService) Revoke(ctx context.Context, refreshToken string) error {
	return nil
}

func setupAuthRouter(t *testing.T) (*gin.Engine, models.Actor) {
	t.Helper()
	actor := models.Actor{ID: uuid.Must(uuid.NewV4()), Role: models.RoleEditor}
	auth := &stubAuthService{token: "valid-token", actor: actor}

	router := setupTestGin()
	router.Use(Authenticate(auth))
	router.GET("/whoami", func(c *gin.Context) {
		got, ok := ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no actor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": got.ID.String(), "role": string(got.Role)})
	})
	return router, actor
}

func TestAuthenticate_ValidToken(t *testing.T) {
	router, actor := setupAuthRouter(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status OK, got %d", w.Code)
	}
	if !contains(w.Body.String(), actor.ID.String()) {
		t.Errorf("Expected actor id in response, got %s", w.Body.String())
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status Unauthorized, got %d", w.Code)
	}
}

func TestAuthenticate_BadToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status Unauthorized, got %d", w.Code)
	}
}

func TestAuthenticate_BareToken(t *testing.T) {
	// Tokens without the Bearer prefix are accepted as-is.
	router, _ := setupAuthRouter(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status OK, got %d", w.Code)
	}
}

func TestActorFromContext_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := ActorFromContext(c); ok {
		t.Error("Expected no actor in a fresh context")
	}
}
