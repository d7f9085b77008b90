//go:build integration

package experience

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
	require.NoError(t, db.AutoMigrate(&models.ExperienceModel{}))
	return NewService(db)
}

func strPtr(s string) *string { return &s }

func TestUpdateRoleRefreshesSlug(t *testing.T) {
	svc := setupService(t)

	e, err := svc.Create(&CreateExperienceDTO{
		Role: "Engineer", Company: "Acme", StartedAt: "2024-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, "engineer-acme", e.Slug)

	updated, err := svc.Update(e.ID, &UpdateExperienceDTO{Role: strPtr("Staff Engineer")})
	require.NoError(t, err)
	assert.Equal(t, "staff-engineer-acme", updated.Slug, "role change refreshes the slug")

	updated, err = svc.Update(e.ID, &UpdateExperienceDTO{Company: strPtr("Globex")})
	require.NoError(t, err)
	assert.Equal(t, "staff-engineer-globex", updated.Slug, "company change refreshes the slug")
}

func TestUpdateExplicitSlugWins(t *testing.T) {
	svc := setupService(t)

	e, err := svc.Create(&CreateExperienceDTO{
		Role: "Engineer", Company: "Acme", StartedAt: "2024-01-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(e.ID, &UpdateExperienceDTO{
		Role: strPtr("Staff Engineer"),
		Slug: strPtr("acme-days"),
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-days", updated.Slug)
}

func TestUpdateUnrelatedFieldKeepsSlug(t *testing.T) {
	svc := setupService(t)

	e, err := svc.Create(&CreateExperienceDTO{
		Role: "Engineer", Company: "Acme", StartedAt: "2024-01-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(e.ID, &UpdateExperienceDTO{Location: strPtr("Remote")})
	require.NoError(t, err)
	assert.Equal(t, "engineer-acme", updated.Slug)
}
