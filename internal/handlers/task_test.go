package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/photoclub/club-management-api/internal/auth"
	"github.com/photoclub/club-management-api/internal/database"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/realtime"
	"github.com/photoclub/club-management-api/internal/repository"
	"github.com/photoclub/club-management-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type taskTestEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	tokens   *auth.Manager
	workRepo repository.WorkRepository
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
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
	taskRepo := repository.NewTaskRepository(db)
	workRepo := repository.NewWorkRepository(db)

	taskService := services.NewTaskService(taskRepo, userRepo, workRepo, realtime.NewHub())
	tokens := auth.NewManager("test-secret", "test-issuer", "test-audience")
	handler := NewTaskHandler(taskService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	r := gin.New()
	tasks := r.Group("/api/tasks")
	tasks.Use(requireAuth)
	{
		tasks.GET("", handler.ListTasks)
		tasks.GET("/:id", handler.GetTask)
		tasks.POST("/:id/submit", middleware.RequireMemberOrAdmin(), handler.SubmitWork)

		admin := tasks.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", handler.CreateTask)
			admin.POST("/:id/assign", handler.AssignTask)
			admin.DELETE("/:id/assign/:userId", handler.UnassignTask)
			admin.PUT("/:id/assignments/:userId", handler.UpdateAssignmentStatus)
			admin.POST("/:id/publish", handler.PublishTask)
		}
	}

	return taskTestEnv{db: db, router: r, tokens: tokens, workRepo: workRepo}
}

func (env taskTestEnv) createUser(t *testing.T, username string, role models.UserRole) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		RealName:     username,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)

	token, err := env.tokens.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (env taskTestEnv) createTask(t *testing.T, adminToken string, assignees ...uint64) uint64 {
	t.Helper()

	payload := map[string]interface{}{
		"title":       "Club exhibition",
		"description": "Shots for the spring exhibition",
		"type":        "photo",
		"deadline":    time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	}
	if len(assignees) > 0 {
		payload["assigned_to"] = assignees
	}

	w := doJSON(t, env.router, http.MethodPost, "/api/tasks", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	return uint64(data["id"].(float64))
}

func TestTaskHandler_CreateRequiresAdmin(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, memberToken := env.createUser(t, "member", models.RoleMember)

	w := doJSON(t, env.router, http.MethodPost, "/api/tasks", memberToken, map[string]interface{}{
		"title":       "Forbidden",
		"description": "members cannot create tasks",
		"type":        "photo",
		"deadline":    time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskHandler_CreateRejectsPastDeadline(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)

	w := doJSON(t, env.router, http.MethodPost, "/api/tasks", adminToken, map[string]interface{}{
		"title":       "Too late",
		"description": "deadline in the past",
		"type":        "photo",
		"deadline":    time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_VisibilityForMembers(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)
	memberA, tokenA := env.createUser(t, "member-a", models.RoleMember)
	_, tokenB := env.createUser(t, "member-b", models.RoleMember)

	taskID := env.createTask(t, adminToken, memberA.ID)
	w := doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/publish", taskID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the assignee sees it
	w = doJSON(t, env.router, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// an unrelated member does not
	w = doJSON(t, env.router, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), tokenB, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// and their list is empty
	w = doJSON(t, env.router, http.MethodGet, "/api/tasks", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	require.Empty(t, data["tasks"])
}

func TestTaskHandler_AssignValidation(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)
	regular, _ := env.createUser(t, "regular", models.RoleUser)

	taskID := env.createTask(t, adminToken)

	w := doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign", taskID), adminToken, map[string]interface{}{
		"user_ids": []uint64{regular.ID},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/assign", taskID), adminToken, map[string]interface{}{
		"user_ids": []uint64{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_SubmitFlow(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)
	memberA, tokenA := env.createUser(t, "member-a", models.RoleMember)
	memberB, tokenB := env.createUser(t, "member-b", models.RoleMember)

	taskID := env.createTask(t, adminToken, memberA.ID, memberB.ID)
	w := doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/publish", taskID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	work := &models.Work{
		Title:      "Exhibition entry",
		Type:       models.WorkTypePhoto,
		AuthorID:   memberA.ID,
		AuthorName: memberA.RealName,
		Status:     models.WorkPending,
		IsPublic:   true,
	}
	require.NoError(t, env.workRepo.Create(work))

	// member B cannot submit member A's work
	w = doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/submit", taskID), tokenB, map[string]interface{}{
		"work_id": work.ID,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// member A submits and the aggregate moves
	w = doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/submit", taskID), tokenA, map[string]interface{}{
		"work_id": work.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeEnvelope(t, w).Data.(map[string]interface{})
	require.EqualValues(t, 50, data["completion_rate"])
	require.EqualValues(t, 1, data["submission_count"])
}

func TestTaskHandler_UnassignMissingIs404(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)
	member, _ := env.createUser(t, "member", models.RoleMember)

	taskID := env.createTask(t, adminToken)

	w := doJSON(t, env.router, http.MethodDelete, fmt.Sprintf("/api/tasks/%d/assign/%d", taskID, member.ID), adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskHandler_UpdateAssignmentStatusMissingIs404(t *testing.T) {
	env := setupTaskTestEnv(t)
	_, adminToken := env.createUser(t, "admin", models.RoleAdmin)
	member, _ := env.createUser(t, "member", models.RoleMember)

	taskID := env.createTask(t, adminToken)
	w := doJSON(t, env.router, http.MethodPut, fmt.Sprintf("/api/tasks/%d/assignments/%d", taskID, member.ID), adminToken, map[string]interface{}{
		"status": "completed",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}
