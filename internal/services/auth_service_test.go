package services

import (
	"testing"

	"github.com/photoclub/club-management-api/internal/database"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTestEnv(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.MigrateOn(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewAuthService(repository.NewUserRepository(db))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, authService := setupAuthTestEnv(t)

	user, err := authService.Register(RegisterInput{
		Username: "newmember",
		Email:    "newmember@example.com",
		Password: "supersecret",
		RealName: "New Member",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, user.Role)
	require.True(t, user.IsActive)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	loggedIn, err := authService.Login("newmember", "supersecret")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotNil(t, loggedIn.LastLogin)
}

func TestAuthService_Register_DuplicateChecks(t *testing.T) {
	_, authService := setupAuthTestEnv(t)

	_, err := authService.Register(RegisterInput{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "supersecret",
		RealName: "Taken",
	})
	require.NoError(t, err)

	_, err = authService.Register(RegisterInput{
		Username: "taken",
		Email:    "other@example.com",
		Password: "supersecret",
		RealName: "Other",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = authService.Register(RegisterInput{
		Username: "other",
		Email:    "taken@example.com",
		Password: "supersecret",
		RealName: "Other",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login_Failures(t *testing.T) {
	db, authService := setupAuthTestEnv(t)

	_, err := authService.Register(RegisterInput{
		Username: "someone",
		Email:    "someone@example.com",
		Password: "supersecret",
		RealName: "Someone",
	})
	require.NoError(t, err)

	_, err = authService.Login("nobody", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = authService.Login("someone", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "someone").
		Update("is_active", false).Error)
	_, err = authService.Login("someone", "supersecret")
	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthService_ChangePassword(t *testing.T) {
	_, authService := setupAuthTestEnv(t)

	user, err := authService.Register(RegisterInput{
		Username: "rotating",
		Email:    "rotating@example.com",
		Password: "oldpassword",
		RealName: "Rotating",
	})
	require.NoError(t, err)

	err = authService.ChangePassword(user.ID, "wrongpassword", "newpassword")
	require.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, authService.ChangePassword(user.ID, "oldpassword", "newpassword"))

	_, err = authService.Login("rotating", "oldpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = authService.Login("rotating", "newpassword")
	require.NoError(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	_, authService := setupAuthTestEnv(t)

	user, err := authService.Register(RegisterInput{
		Username: "profiled",
		Email:    "profiled@example.com",
		Password: "supersecret",
		RealName: "Profiled",
	})
	require.NoError(t, err)

	_, err = authService.Register(RegisterInput{
		Username: "other",
		Email:    "other@example.com",
		Password: "supersecret",
		RealName: "Other",
	})
	require.NoError(t, err)

	bio := "Shoots landscapes"
	updated, err := authService.UpdateProfile(user.ID, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, bio, updated.Bio)

	takenEmail := "other@example.com"
	_, err = authService.UpdateProfile(user.ID, UpdateProfileInput{Email: &takenEmail})
	require.ErrorIs(t, err, ErrEmailTaken)
}
