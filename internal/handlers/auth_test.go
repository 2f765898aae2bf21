package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/photoclub/club-management-api/internal/auth"
	"github.com/photoclub/club-management-api/internal/database"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/repository"
	"github.com/photoclub/club-management-api/internal/response"
	"github.com/photoclub/club-management-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.Manager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.MigrateOn(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokens := auth.NewManager("test-secret", "test-issuer", "test-audience")
	handler := NewAuthHandler(authService, tokens)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", requireAuth, handler.Logout)
	r.GET("/api/auth/me", requireAuth, handler.Me)
	r.PUT("/api/auth/me/password", requireAuth, handler.ChangePassword)

	return authTestEnv{db: db, router: r, tokens: tokens}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":  "newbie",
		"email":     "newbie@example.com",
		"password":  "supersecret",
		"real_name": "New Bee",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeEnvelope(t, w)
	require.True(t, body.Success)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	require.NotEmpty(t, data["token"])

	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "newbie", user["username"])
	require.Equal(t, string(models.RoleUser), user["role"])
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":  "x",
		"email":     "not-an-email",
		"password":  "123",
		"real_name": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeEnvelope(t, w)
	require.False(t, body.Success)
	require.NotEmpty(t, body.Errors)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":  "returning",
		"email":     "returning@example.com",
		"password":  "supersecret",
		"real_name": "Returning User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "returning",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	data := body.Data.(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(t, env.router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeEnvelope(t, w)
	me := body.Data.(map[string]interface{})
	require.Equal(t, "returning", me["username"])
	require.Equal(t, "returning@example.com", me["email"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.User{
		Username:     "locked",
		Email:        "locked@example.com",
		PasswordHash: string(hash),
		RealName:     "Locked Out",
		Role:         models.RoleMember,
		IsActive:     true,
	}).Error)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "locked",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, decodeEnvelope(t, w).Success)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":  "leaving",
		"email":     "leaving@example.com",
		"password":  "supersecret",
		"real_name": "Leaving Soon",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	token := data["token"].(string)

	w = doJSON(t, env.router, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decodeEnvelope(t, w).Success)

	// tokens are stateless; the endpoint only acknowledges
	w = doJSON(t, env.router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Me_RequiresToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_DisabledAccountCannotUseToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":  "banned",
		"email":     "banned@example.com",
		"password":  "supersecret",
		"real_name": "Banned",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	token := data["token"].(string)

	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "banned").
		Update("is_active", false).Error)

	w = doJSON(t, env.router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
