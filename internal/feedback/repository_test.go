package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackboard/feedback-client/internal/api"
	"github.com/feedbackboard/feedback-client/internal/models"
	"github.com/feedbackboard/feedback-client/internal/session"
)

func newTestRepository(t *testing.T) (*Repository, *stubClient, *session.Store) {
	t.Helper()
	client := newStubClient()
	sess := session.NewStore()
	sess.Login("t1", models.User{ID: "u1", Name: "Ana", Email: "a@b.com"})
	return NewRepository(client, sess), client, sess
}

func validCreate(title string) models.CreateFeedbackRequest {
	return models.CreateFeedbackRequest{
		Store:       "Loja A",
		Product:     "Produto B",
		Title:       title,
		Description: "Descrição D",
	}
}

func TestRefreshReplacesCollection(t *testing.T) {
	repo, client, _ := newTestRepository(t)

	client.feedbacks = []models.Feedback{
		{ID: "fb1", UserID: "u1", Title: "antigo"},
		{ID: "fb2", UserID: "u2", Title: "de outro usuário"},
	}

	require.NoError(t, repo.Refresh(context.Background()))
	items := repo.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fb1", items[0].ID)

	// a second refresh replaces wholesale, no partial merge
	client.feedbacks = nil
	require.NoError(t, repo.Refresh(context.Background()))
	assert.Empty(t, repo.Items())
}

func TestRefreshAnonymous(t *testing.T) {
	repo, client, sess := newTestRepository(t)
	sess.Logout()

	err := repo.Refresh(context.Background())
	assert.True(t, api.IsUnauthorized(err))
	assert.Zero(t, client.totalCalls())
}

func TestCreateAppendsCanonicalItem(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Refresh(ctx))
	before := len(repo.Items())

	fb, err := repo.Create(ctx, validCreate("Título C"))
	require.NoError(t, err)
	assert.NotEmpty(t, fb.ID)

	items := repo.Items()
	require.Len(t, items, before+1)
	last := items[len(items)-1]
	assert.Equal(t, "Loja A", last.Store)
	assert.Equal(t, "Produto B", last.Product)
	assert.Equal(t, "Título C", last.Title)
	assert.Equal(t, "Descrição D", last.Description)
}

func TestCreateFailureLeavesCollection(t *testing.T) {
	repo, client, _ := newTestRepository(t)
	client.err = &api.ServerError{StatusCode: 500, Message: "boom"}

	_, err := repo.Create(context.Background(), validCreate("x"))
	require.Error(t, err)
	assert.Empty(t, repo.Items())
	assert.Equal(t, StateFailed, repo.Coordinator().State("u1", ActionCreate))
}

func TestUpdateWithoutMediaKeepsMediaLength(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	payload := validCreate("Título C")
	payload.Media = []models.MediaFile{{Name: "foto.png", Content: nil}}
	fb, err := repo.Create(ctx, payload)
	require.NoError(t, err)
	require.Len(t, fb.Media, 1)

	updated, err := repo.Update(ctx, fb.ID, models.UpdateFeedbackRequest{
		Store:       fb.Store,
		Product:     fb.Product,
		Title:       fb.Title,
		Description: fb.Description,
	})
	require.NoError(t, err)
	assert.Len(t, updated.Media, 1)

	got, ok := repo.Get(fb.ID)
	require.True(t, ok)
	assert.Len(t, got.Media, 1)
}

func TestLikePatchesOnlyLikeCount(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, validCreate("Título C"))
	require.NoError(t, err)

	liked, err := repo.Like(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	got, ok := repo.Get(fb.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, fb.Title, got.Title)
	assert.Equal(t, fb.Description, got.Description)
	assert.Equal(t, len(fb.Media), len(got.Media))
}

func TestDeleteRemovesByID(t *testing.T) {
	repo, _, _ := newTestRepository(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, validCreate("Título C"))
	require.NoError(t, err)

	err = repo.Delete(ctx, fb.ID, func() bool { return true })
	require.NoError(t, err)

	_, ok := repo.Get(fb.ID)
	assert.False(t, ok)
}

func TestDeleteNotConfirmedIssuesNoRequest(t *testing.T) {
	repo, client, _ := newTestRepository(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, validCreate("Título C"))
	require.NoError(t, err)

	err = repo.Delete(ctx, fb.ID, func() bool { return false })
	assert.Equal(t, ErrNotConfirmed, err)
	assert.Zero(t, client.count("delete"))

	err = repo.Delete(ctx, fb.ID, nil)
	assert.Equal(t, ErrNotConfirmed, err)
	assert.Zero(t, client.count("delete"))

	_, ok := repo.Get(fb.ID)
	assert.True(t, ok)
}

func TestLateLikeAfterDeleteIsNoOp(t *testing.T) {
	repo, client, _ := newTestRepository(t)
	ctx := context.Background()

	fb, err := repo.Create(ctx, validCreate("Título C"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, fb.ID, func() bool { return true }))

	// the entry still exists remotely in this scenario; the local
	// reconciliation must tolerate the id being gone
	client.feedbacks = []models.Feedback{{ID: fb.ID, UserID: "u1", Likes: 3}}

	liked, err := repo.Like(ctx, fb.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, liked.Likes)
	_, ok := repo.Get(fb.ID)
	assert.False(t, ok)
}
