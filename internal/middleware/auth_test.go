package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.Role{}, &model.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, roleName string) *model.User {
	t.Helper()

	role := model.Role{Name: roleName}
	require.NoError(t, db.Create(&role).Error)

	user := model.User{
		Username:     "jdoe",
		PasswordHash: "x",
		FirstName:    "John",
		RoleID:       &role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func signToken(t *testing.T, secret string, subject string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newRouter(m *AuthMiddleware, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", m.RequireAuth())
	if len(roles) > 0 {
		group.Use(m.RequireRoles(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})

	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	rec := doRequest(newRouter(m), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	rec := doRequest(newRouter(m), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	token := signToken(t, "other-secret", uuid.New().String(), time.Hour)
	rec := doRequest(newRouter(m), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	token := signToken(t, "test-secret", uuid.New().String(), -time.Minute)
	rec := doRequest(newRouter(m), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	userID := uuid.New().String()
	token := signToken(t, "test-secret", userID, time.Hour)
	rec := doRequest(newRouter(m), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleTeacher)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	token := signToken(t, "test-secret", user.ID.String(), time.Hour)
	rec := doRequest(newRouter(m, model.RoleTeacher), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	user := seedUser(t, db, model.RoleStudent)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	token := signToken(t, "test-secret", user.ID.String(), time.Hour)
	rec := doRequest(newRouter(m, model.RoleTeacher), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied")
}

func TestRequireRolesUnknownAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := setupTestDB(t)
	m := NewAuthMiddleware(repository.NewUserRepository(db))

	// A syntactically valid token whose subject no longer exists.
	token := signToken(t, "test-secret", uuid.New().String(), time.Hour)
	rec := doRequest(newRouter(m, model.RoleAdmin), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
