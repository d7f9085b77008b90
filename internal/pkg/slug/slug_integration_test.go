//go:build integration

package slug_test

import (
	"testing"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/slug"
	"github.com/folio-space/core/internal/testsupport"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProjects(t *testing.T) *gorm.DB {
	t.Helper()
	db := testsupport.OpenMySQL(t)
	require.NoError(t, db.AutoMigrate(&models.ProjectModel{}))
	return db
}

func createProject(t *testing.T, db *gorm.DB, title, s string) models.ProjectModel {
	t.Helper()
	p := models.ProjectModel{Title: title, Slug: s, Published: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// TestMakeUniqueAppendsSuffixOnCollision walks the -1, -2 suffix chain.
func TestMakeUniqueAppendsSuffixOnCollision(t *testing.T) {
	db := setupProjects(t)

	got, err := slug.MakeUnique(db, "projects", "slug", "my-project", "")
	require.NoError(t, err)
	require.Equal(t, "my-project", got, "free candidate returned unchanged")

	createProject(t, db, "My Project", "my-project")
	got, err = slug.MakeUnique(db, "projects", "slug", "my-project", "")
	require.NoError(t, err)
	require.Equal(t, "my-project-1", got)

	createProject(t, db, "My Project 1", "my-project-1")
	got, err = slug.MakeUnique(db, "projects", "slug", "my-project", "")
	require.NoError(t, err)
	require.Equal(t, "my-project-2", got)
}

// TestMakeUniqueExcludesOwnRow verifies updates keep their own slug.
func TestMakeUniqueExcludesOwnRow(t *testing.T) {
	db := setupProjects(t)

	p := createProject(t, db, "My Project", "my-project")

	got, err := slug.MakeUnique(db, "projects", "slug", "my-project", p.ID)
	require.NoError(t, err)
	require.Equal(t, "my-project", got, "record must not collide with itself")

	createProject(t, db, "Other", "my-project-1")
	got, err = slug.MakeUnique(db, "projects", "slug", "my-project-1", p.ID)
	require.NoError(t, err)
	require.Equal(t, "my-project-1-1", got, "other rows still collide")
}

// TestMakeUniqueIgnoresSoftDeletedRows confirms uniqueness is scoped to live
// records only.
func TestMakeUniqueIgnoresSoftDeletedRows(t *testing.T) {
	db := setupProjects(t)

	p := createProject(t, db, "Gone", "gone-project")
	require.NoError(t, db.Delete(&p).Error)

	got, err := slug.MakeUnique(db, "projects", "slug", "gone-project", "")
	require.NoError(t, err)
	require.Equal(t, "gone-project", got)
}
