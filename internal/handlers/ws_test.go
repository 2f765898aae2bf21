package handlers

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/photoclub/club-management-api/internal/auth"
	"github.com/photoclub/club-management-api/internal/database"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/realtime"
	"github.com/photoclub/club-management-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type wsTestEnv struct {
	server *httptest.Server
	hub    *realtime.Hub
	user   *models.User
	token  string
}

func setupWSTestEnv(t *testing.T) wsTestEnv {
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
	user := &models.User{
		Username:     "watcher",
		Email:        "watcher@example.com",
		PasswordHash: "not-a-real-hash",
		RealName:     "Watcher",
		Role:         models.RoleMember,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	tokens := auth.NewManager("test-secret", "test-issuer", "test-audience")
	token, err := tokens.GenerateToken(user)
	require.NoError(t, err)

	hub := realtime.NewHub()
	handler := NewWSHandler(hub)

	r := gin.New()
	r.GET("/api/ws", middleware.RequireAuth(tokens, userRepo), handler.Serve)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return wsTestEnv{server: server, hub: hub, user: user, token: token}
}

func (env wsTestEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/ws?token=" + env.token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() {
		conn.Close()
	})

	// registration happens in the server handler after the handshake
	require.Eventually(t, func() bool {
		return env.hub.HasListeners(env.user.ID)
	}, 2*time.Second, 10*time.Millisecond)

	return conn
}

func TestWSHandler_DeliversEvents(t *testing.T) {
	env := setupWSTestEnv(t)
	conn := env.dial(t)

	env.hub.Notify([]uint64{env.user.ID}, realtime.Event{
		Type:    realtime.EventTaskAssigned,
		TaskID:  7,
		Message: "Club exhibition",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(payload), realtime.EventTaskAssigned)
	require.Contains(t, string(payload), "Club exhibition")
}

func TestWSHandler_ConcurrentNotifiesToOneConnection(t *testing.T) {
	env := setupWSTestEnv(t)
	conn := env.dial(t)

	// many request goroutines notifying the same user must not interleave
	// writes on the shared connection
	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			env.hub.Notify([]uint64{env.user.ID}, realtime.Event{
				Type:   realtime.EventTaskStatus,
				TaskID: 1,
			})
		}()
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for i := 0; i < writers; i++ {
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(payload), realtime.EventTaskStatus)
	}
	wg.Wait()
}

func TestWSHandler_RequiresToken(t *testing.T) {
	env := setupWSTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.Nil(t, conn)
	if resp != nil {
		resp.Body.Close()
	}
}
