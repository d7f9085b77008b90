//go:build integration

package achievement

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
	require.NoError(t, db.AutoMigrate(&models.AchievementModel{}))
	return NewService(db)
}

func strPtr(s string) *string { return &s }

func TestUpdateTitleRefreshesSlug(t *testing.T) {
	svc := setupService(t)

	a, err := svc.Create(&CreateAchievementDTO{Title: "Gold Medal", Issuer: "ACM"})
	require.NoError(t, err)
	require.Equal(t, "gold-medal", a.Slug)

	updated, err := svc.Update(a.ID, &UpdateAchievementDTO{Title: strPtr("Silver Medal")})
	require.NoError(t, err)
	assert.Equal(t, "silver-medal", updated.Slug, "title change refreshes the slug")

	// Explicit slug wins over the derived one.
	updated, err = svc.Update(a.ID, &UpdateAchievementDTO{
		Title: strPtr("Bronze Medal"),
		Slug:  strPtr("the-medal"),
	})
	require.NoError(t, err)
	assert.Equal(t, "the-medal", updated.Slug)

	// An unrelated update leaves the slug alone.
	updated, err = svc.Update(a.ID, &UpdateAchievementDTO{Issuer: strPtr("IEEE")})
	require.NoError(t, err)
	assert.Equal(t, "the-medal", updated.Slug)
}
