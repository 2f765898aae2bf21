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

type workTestEnv struct {
	db          *gorm.DB
	workService *WorkService
	admin       *models.User
	author      *models.User
	viewer      *models.User
}

func setupWorkTestEnv(t *testing.T) workTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.MigrateOn(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return workTestEnv{
		db:          db,
		workService: NewWorkService(repository.NewWorkRepository(db)),
		admin:       createTestUser(t, db, "admin", models.RoleAdmin, true),
		author:      createTestUser(t, db, "author", models.RoleMember, true),
		viewer:      createTestUser(t, db, "viewer", models.RoleMember, true),
	}
}

func (env workTestEnv) createWork(t *testing.T, public bool) *models.Work {
	t.Helper()

	work, err := env.workService.Create(CreateWorkInput{
		Title:    "Evening skyline",
		Type:     models.WorkTypePhoto,
		IsPublic: public,
		Files: []models.WorkFile{{
			Filename:     "skyline.jpg",
			OriginalName: "IMG_0042.jpg",
			Mimetype:     "image/jpeg",
			Size:         2048,
			Path:         "/uploads/skyline.jpg",
			URL:          "/static/skyline.jpg",
		}},
		Author: env.author,
	})
	require.NoError(t, err)
	return work
}

func TestWorkService_CreateDefaults(t *testing.T) {
	env := setupWorkTestEnv(t)

	work := env.createWork(t, true)
	require.Equal(t, models.WorkPending, work.Status)
	require.Equal(t, env.author.RealName, work.AuthorName)
	require.Equal(t, "/static/skyline.jpg", work.Thumbnail)
	require.False(t, work.IsTaskSubmission)
	require.Len(t, work.Files, 1)
}

func TestWorkService_VisibilityRules(t *testing.T) {
	env := setupWorkTestEnv(t)
	work := env.createWork(t, true)

	// pending works are hidden from everyone but the author and admins
	_, err := env.workService.Get(work.ID, env.viewer)
	require.ErrorIs(t, err, ErrWorkNotVisible)

	_, err = env.workService.Get(work.ID, env.author)
	require.NoError(t, err)
	_, err = env.workService.Get(work.ID, env.admin)
	require.NoError(t, err)

	_, err = env.workService.Review(work.ID, env.admin, true, "")
	require.NoError(t, err)

	approved, err := env.workService.Get(work.ID, env.viewer)
	require.NoError(t, err)
	require.Equal(t, models.WorkApproved, approved.Status)
}

func TestWorkService_ListGalleryShowsApprovedPublicOnly(t *testing.T) {
	env := setupWorkTestEnv(t)

	visible := env.createWork(t, true)
	_, err := env.workService.Review(visible.ID, env.admin, true, "")
	require.NoError(t, err)

	env.createWork(t, true) // stays pending
	private := env.createWork(t, false)
	_, err = env.workService.Review(private.ID, env.admin, true, "")
	require.NoError(t, err)

	works, total, err := env.workService.List(ListWorksInput{Actor: env.viewer, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, visible.ID, works[0].ID)

	// the author sees all three via mine
	_, total, err = env.workService.List(ListWorksInput{Actor: env.author, Mine: true, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)

	// admins list everything
	_, total, err = env.workService.List(ListWorksInput{Actor: env.admin, Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
}

func TestWorkService_GetCountsViews(t *testing.T) {
	env := setupWorkTestEnv(t)
	work := env.createWork(t, true)
	_, err := env.workService.Review(work.ID, env.admin, true, "")
	require.NoError(t, err)

	seen, err := env.workService.Get(work.ID, env.viewer)
	require.NoError(t, err)
	require.Equal(t, 1, seen.Views)

	// the author's own visits do not count
	seen, err = env.workService.Get(work.ID, env.author)
	require.NoError(t, err)
	require.Equal(t, 1, seen.Views)
}

func TestWorkService_ReviewRejectStoresReason(t *testing.T) {
	env := setupWorkTestEnv(t)
	work := env.createWork(t, true)

	rejected, err := env.workService.Review(work.ID, env.admin, false, "underexposed")
	require.NoError(t, err)
	require.Equal(t, models.WorkRejected, rejected.Status)
	require.Equal(t, "underexposed", rejected.RejectionReason)
	require.Nil(t, rejected.ApprovalDate)

	// a later approval clears the rejection
	approved, err := env.workService.Review(work.ID, env.admin, true, "")
	require.NoError(t, err)
	require.Equal(t, models.WorkApproved, approved.Status)
	require.Empty(t, approved.RejectionReason)
	require.NotNil(t, approved.ApprovalDate)
	require.Equal(t, env.admin.ID, *approved.ApprovedByID)
}

func TestWorkService_ToggleLike(t *testing.T) {
	env := setupWorkTestEnv(t)
	work := env.createWork(t, true)

	liked, likes, err := env.workService.ToggleLike(work.ID, env.viewer)
	require.NoError(t, err)
	require.True(t, liked)
	require.Equal(t, 1, likes)

	liked, likes, err = env.workService.ToggleLike(work.ID, env.viewer)
	require.NoError(t, err)
	require.False(t, liked)
	require.Equal(t, 0, likes)
}

func TestWorkService_Comments(t *testing.T) {
	env := setupWorkTestEnv(t)
	work := env.createWork(t, true)

	comment, err := env.workService.AddComment(work.ID, env.viewer, "Great light!")
	require.NoError(t, err)
	require.Equal(t, env.viewer.Username, comment.Username)

	// a third party may not remove someone else's comment
	err = env.workService.RemoveComment(work.ID, comment.ID, env.author)
	require.ErrorIs(t, err, ErrCommentForbidden)

	// the comment author may
	require.NoError(t, env.workService.RemoveComment(work.ID, comment.ID, env.viewer))

	err = env.workService.RemoveComment(work.ID, comment.ID, env.admin)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestWorkService_UpdateAndDeletePermissions(t *testing.T) {
	env := setupWorkTestEnv(t)
	work := env.createWork(t, true)

	title := "Renamed"
	_, err := env.workService.Update(work.ID, env.viewer, UpdateWorkInput{Title: &title})
	require.ErrorIs(t, err, ErrWorkForbidden)

	updated, err := env.workService.Update(work.ID, env.author, UpdateWorkInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)

	require.ErrorIs(t, env.workService.Delete(work.ID, env.viewer), ErrWorkForbidden)
	require.NoError(t, env.workService.Delete(work.ID, env.admin))

	_, err = env.workService.Get(work.ID, env.admin)
	require.ErrorIs(t, err, ErrWorkNotFound)
}
