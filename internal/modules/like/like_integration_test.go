//go:build integration

package like

import (
	"sync"
	"testing"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db := testsupport.OpenMySQL(t)
	require.NoError(t, db.AutoMigrate(&models.LikeModel{}))
	return NewService(db)
}

func TestToggleAlternates(t *testing.T) {
	svc := setupService(t)

	liked, count, err := svc.Toggle("user-1", "project", "p-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)

	liked, count, err = svc.Toggle("user-1", "project", "p-1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, count)

	liked, count, err = svc.Toggle("user-1", "project", "p-1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, count)
}

func TestToggleCountsPerItem(t *testing.T) {
	svc := setupService(t)

	_, _, err := svc.Toggle("user-1", "project", "p-1")
	require.NoError(t, err)
	_, count, err := svc.Toggle("user-2", "project", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Another item of the same type is counted separately.
	_, count, err = svc.Toggle("user-1", "project", "p-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Same id under a different type is a different item.
	_, count, err = svc.Toggle("user-1", "experience", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestStatus(t *testing.T) {
	svc := setupService(t)

	count, userLiked, err := svc.Status("user-1", "project", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	assert.False(t, userLiked)

	_, _, err = svc.Toggle("user-1", "project", "p-1")
	require.NoError(t, err)
	_, _, err = svc.Toggle("user-2", "project", "p-1")
	require.NoError(t, err)

	count, userLiked, err = svc.Status("user-1", "project", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.True(t, userLiked)

	count, userLiked, err = svc.Status("user-3", "project", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.False(t, userLiked)

	count, userLiked, err = svc.Status("", "project", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.False(t, userLiked, "anonymous status never reports liked")
}

func TestToggleRejectsEmptyActor(t *testing.T) {
	svc := setupService(t)

	_, _, err := svc.Toggle("", "project", "p-1")
	assert.Error(t, err)
}

// TestConcurrentTogglesConverge runs many actors in parallel; the final count
// must equal the number of actors left in the liked state.
func TestConcurrentTogglesConverge(t *testing.T) {
	svc := setupService(t)

	const actors = 10
	var wg sync.WaitGroup
	for i := 0; i < actors; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			actor := string(rune('a' + n))
			// Odd actors toggle twice and end unliked.
			_, _, err := svc.Toggle(actor, "project", "p-1")
			assert.NoError(t, err)
			if n%2 == 1 {
				_, _, err := svc.Toggle(actor, "project", "p-1")
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	count, _, err := svc.Status("", "project", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, actors/2, count)
}
