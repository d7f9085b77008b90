//go:build integration

package comment

import (
	"testing"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/testsupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db := testsupport.OpenMySQL(t)
	require.NoError(t, db.AutoMigrate(&models.CommentModel{}))
	return NewService(db)
}

func anonymousComment(t *testing.T, svc *Service, itemID, text string) *models.CommentModel {
	t.Helper()
	c, err := svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: itemID,
		Text: text, Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)
	return c
}

func TestCreateAndListNewestFirst(t *testing.T) {
	svc := setupService(t)

	first := anonymousComment(t, svc, "p-1", "first")
	time.Sleep(1100 * time.Millisecond) // created_at has second precision
	second := anonymousComment(t, svc, "p-1", "second")

	comments, err := svc.ListByItem(models.ItemTypeProject, "p-1", false)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID, "newest comment first")
	assert.Equal(t, first.ID, comments[1].ID)
}

func TestCreateAuthenticatedAuthor(t *testing.T) {
	svc := setupService(t)

	c, err := svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1",
		Text: "hi", ActorID: "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, c.AuthorID)
	assert.Equal(t, "user-1", *c.AuthorID)
	assert.Empty(t, c.AuthorName)
}

func TestCreateRejectsInvalidAuthorship(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1", Text: "hi",
	})
	assert.ErrorIs(t, err, errAuthorRequired)

	// Half-filled anonymous details are not enough.
	_, err = svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1", Text: "hi",
		Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, errAuthorRequired)

	_, err = svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1", Text: "hi",
		Name: "Ada",
	})
	assert.ErrorIs(t, err, errAuthorRequired)

	_, err = svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1", Text: "hi",
		ActorID: "user-1", Name: "Ada", Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, errAuthorAmbiguous)
}

func TestReplyParentChecks(t *testing.T) {
	svc := setupService(t)

	parent := anonymousComment(t, svc, "p-1", "parent")

	reply, err := svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1",
		Text: "reply", ActorID: "user-1", ParentID: &parent.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, *reply.ParentID)

	missing := "nope"
	_, err = svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1",
		Text: "reply", ActorID: "user-1", ParentID: &missing,
	})
	assert.ErrorIs(t, err, errParentNotFound)

	_, err = svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "other-item",
		Text: "reply", ActorID: "user-1", ParentID: &parent.ID,
	})
	assert.ErrorIs(t, err, errParentMismatch)
}

func TestApprovalHidesFromPublicList(t *testing.T) {
	svc := setupService(t)

	c := anonymousComment(t, svc, "p-1", "spam?")
	_, err := svc.SetApproved(c.ID, false)
	require.NoError(t, err)

	visible, err := svc.ListByItem(models.ItemTypeProject, "p-1", false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.ListByItem(models.ItemTypeProject, "p-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteRemovesReplies(t *testing.T) {
	svc := setupService(t)

	parent := anonymousComment(t, svc, "p-1", "parent")
	_, err := svc.Create(CreateParams{
		ItemType: models.ItemTypeProject, ItemID: "p-1",
		Text: "reply", ActorID: "user-1", ParentID: &parent.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(parent.ID))

	comments, err := svc.ListByItem(models.ItemTypeProject, "p-1", true)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
