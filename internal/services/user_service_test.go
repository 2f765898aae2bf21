package services

import (
	"testing"

	"github.com/photoclub/club-management-api/internal/database"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTestEnv(t *testing.T) (*gorm.DB, *UserService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.MigrateOn(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewUserService(repository.NewUserRepository(db))
}

func TestUserService_CreateWithRole(t *testing.T) {
	_, userService := setupUserTestEnv(t)

	user, err := userService.Create(CreateUserInput{
		Username: "clubmember",
		Email:    "clubmember@example.com",
		Password: "supersecret",
		RealName: "Club Member",
		Role:     models.RoleMember,
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, user.Role)

	_, err = userService.Create(CreateUserInput{
		Username: "clubmember",
		Email:    "different@example.com",
		Password: "supersecret",
		RealName: "Duplicate",
		Role:     models.RoleMember,
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_RoleAndStatusGuards(t *testing.T) {
	db, userService := setupUserTestEnv(t)

	admin := createTestUser(t, db, "only-admin", models.RoleAdmin, true)
	member := createTestUser(t, db, "plain-member", models.RoleMember, true)

	// self actions are refused outright
	_, err := userService.UpdateRole(admin.ID, admin.ID, models.RoleMember)
	require.ErrorIs(t, err, ErrSelfAction)
	_, err = userService.UpdateStatus(admin.ID, admin.ID, false)
	require.ErrorIs(t, err, ErrSelfAction)
	require.ErrorIs(t, userService.Delete(admin.ID, admin.ID), ErrSelfAction)

	// promoting a member works
	promoted, err := userService.UpdateRole(admin.ID, member.ID, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, promoted.Role)

	// with two admins, demotion is allowed again
	demoted, err := userService.UpdateRole(admin.ID, member.ID, models.RoleMember)
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, demoted.Role)
}

func TestUserService_LastAdminIsProtected(t *testing.T) {
	db, userService := setupUserTestEnv(t)

	admin := createTestUser(t, db, "first-admin", models.RoleAdmin, true)
	second := createTestUser(t, db, "second-admin", models.RoleAdmin, true)

	// demote the second admin; the first is now the last one standing
	_, err := userService.UpdateRole(admin.ID, second.ID, models.RoleMember)
	require.NoError(t, err)

	_, err = userService.UpdateRole(second.ID, admin.ID, models.RoleMember)
	require.ErrorIs(t, err, ErrLastAdmin)
	_, err = userService.UpdateStatus(second.ID, admin.ID, false)
	require.ErrorIs(t, err, ErrLastAdmin)
	require.ErrorIs(t, userService.Delete(second.ID, admin.ID), ErrLastAdmin)
}

func TestUserService_ListFilters(t *testing.T) {
	db, userService := setupUserTestEnv(t)

	createTestUser(t, db, "admin-user", models.RoleAdmin, true)
	createTestUser(t, db, "active-member", models.RoleMember, true)
	createTestUser(t, db, "inactive-member", models.RoleMember, false)

	role := models.RoleMember
	users, total, err := userService.List(ListUsersInput{Role: &role, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)

	active := true
	_, total, err = userService.List(ListUsersInput{Role: &role, IsActive: &active, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	_, total, err = userService.List(ListUsersInput{Search: "inactive", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
}

func TestUserService_Delete(t *testing.T) {
	db, userService := setupUserTestEnv(t)

	admin := createTestUser(t, db, "boss", models.RoleAdmin, true)
	member := createTestUser(t, db, "leaving", models.RoleMember, true)

	require.NoError(t, userService.Delete(admin.ID, member.ID))

	_, err := userService.Get(member.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
