//go:build integration

package project

import (
	"testing"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db := testsupport.OpenMySQL(t)
	require.NoError(t, db.AutoMigrate(&models.ProjectModel{}))
	return NewService(db)
}

func strPtr(s string) *string { return &s }

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Create(&CreateProjectDTO{Title: "Folio Space"})
	require.NoError(t, err)
	assert.Equal(t, "folio-space", p.Slug)

	// A second project with the same title gets a suffixed slug.
	p2, err := svc.Create(&CreateProjectDTO{Title: "Folio Space"})
	require.NoError(t, err)
	assert.Equal(t, "folio-space-1", p2.Slug)
}

func TestUpdateTitleRefreshesSlug(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Create(&CreateProjectDTO{Title: "Old Name"})
	require.NoError(t, err)
	require.Equal(t, "old-name", p.Slug)

	updated, err := svc.Update(p.ID, &UpdateProjectDTO{Title: strPtr("New Name")})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Title)
	assert.Equal(t, "new-name", updated.Slug, "title change refreshes the slug")
}

func TestUpdateTitleKeepsOwnSlugOutOfUniquenessCheck(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Create(&CreateProjectDTO{Title: "Stable Name"})
	require.NoError(t, err)

	// Re-sending the same title must not mint stable-name-1.
	updated, err := svc.Update(p.ID, &UpdateProjectDTO{
		Title: strPtr("Stable Name"),
		Text:  strPtr("body"),
	})
	require.NoError(t, err)
	assert.Equal(t, "stable-name", updated.Slug)
}

func TestUpdateExplicitSlugWinsOverTitle(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Create(&CreateProjectDTO{Title: "Old Name"})
	require.NoError(t, err)

	updated, err := svc.Update(p.ID, &UpdateProjectDTO{
		Title: strPtr("New Name"),
		Slug:  strPtr("Custom Slug"),
	})
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", updated.Slug)
}

func TestUpdateUnrelatedFieldKeepsSlug(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Create(&CreateProjectDTO{Title: "Keep Me"})
	require.NoError(t, err)

	updated, err := svc.Update(p.ID, &UpdateProjectDTO{Summary: strPtr("short blurb")})
	require.NoError(t, err)
	assert.Equal(t, "keep-me", updated.Slug)
}
