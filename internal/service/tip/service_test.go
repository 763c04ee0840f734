package tip

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/repository/memory"
	"github.com/mobimama/mobimama-api/pkg/apperror"
)

func newTestService() *Service {
	return NewService(memory.NewTipRepository())
}

func createTip(t *testing.T, svc *Service, title, language string) *model.Tip {
	t.Helper()
	tip, err := svc.CreateTip(context.Background(), &model.CreateTipRequest{
		Title:    title,
		Content:  "content of " + title,
		Language: language,
	})
	require.NoError(t, err)
	return tip
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateTip(context.Background(), &model.CreateTipRequest{
		Title:    "T",
		Content:  "C",
		Language: "en",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetTip(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "C", got.Content)
	assert.Equal(t, "en", got.Language)
	assert.Nil(t, got.AudioFilename)
}

func TestPublicListingFiltersByLanguageNewestFirst(t *testing.T) {
	svc := newTestService()
	createTip(t, svc, "older english", "en")
	createTip(t, svc, "twi tip", "tw")
	createTip(t, svc, "newer english", "en")

	tips, err := svc.ListPublicTips(context.Background(), "en")
	require.NoError(t, err)
	require.Len(t, tips, 2)
	assert.Equal(t, "newer english", tips[0].Title)
	assert.Equal(t, "older english", tips[1].Title)
}

func TestPublicListingCacheDroppedOnWrite(t *testing.T) {
	svc := newTestService()
	createTip(t, svc, "first", "en")

	tips, err := svc.ListPublicTips(context.Background(), "en")
	require.NoError(t, err)
	require.Len(t, tips, 1)

	createTip(t, svc, "second", "en")

	tips, err = svc.ListPublicTips(context.Background(), "en")
	require.NoError(t, err)
	assert.Len(t, tips, 2)
}

func TestUpdatePrefillsFromStoredRow(t *testing.T) {
	svc := newTestService()
	created := createTip(t, svc, "original", "en")

	newTitle := "edited"
	updated, err := svc.UpdateTip(context.Background(), created.ID, &model.UpdateTipRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, "en", updated.Language)
}

func TestUpdateClearsAudioFilename(t *testing.T) {
	svc := newTestService()

	tip, err := svc.CreateTip(context.Background(), &model.CreateTipRequest{
		Title:         "with audio",
		Content:       "c",
		Language:      "en",
		AudioFilename: "tip1.mp3",
	})
	require.NoError(t, err)
	require.NotNil(t, tip.AudioFilename)

	empty := ""
	updated, err := svc.UpdateTip(context.Background(), tip.ID, &model.UpdateTipRequest{
		AudioFilename: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AudioFilename)
}

func TestDeleteMissingTipIsNotFound(t *testing.T) {
	svc := newTestService()

	err := svc.DeleteTip(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestDashboardTipsLimited(t *testing.T) {
	svc := newTestService()
	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		createTip(t, svc, title, "en")
	}

	tips, err := svc.ListDashboardTips(context.Background())
	require.NoError(t, err)
	assert.Len(t, tips, 5)
	assert.Equal(t, "g", tips[0].Title)
}
