package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingsModel "skillshots_backend/internals/features/settings/model"
	topicModel "skillshots_backend/internals/features/topics/model"
)

func settingsWithEveryone(everyoneID uuid.UUID, categories ...string) *settingsModel.AppSettingModel {
	return &settingsModel.AppSettingModel{
		AppSettingCategories: pq.StringArray(categories),
		EveryoneGroupID:      &everyoneID,
	}
}

func TestAddBlockAssignsNextOrder(t *testing.T) {
	draft := &TopicDraft{}
	require.NoError(t, draft.AddBlock(topicModel.BlockParagraph))
	require.NoError(t, draft.AddBlock(topicModel.BlockVideo))
	require.NoError(t, draft.AddBlock(topicModel.BlockImage))

	assert.Equal(t, 1, draft.Blocks[0].BlockOrder)
	assert.Equal(t, 2, draft.Blocks[1].BlockOrder)
	assert.Equal(t, 3, draft.Blocks[2].BlockOrder)

	assert.ErrorIs(t, draft.AddBlock("carousel"), ErrUnknownBlockType)
	assert.Len(t, draft.Blocks, 3)
}

func TestRemoveBlockKeepsGapUntilNormalize(t *testing.T) {
	draft := &TopicDraft{}
	for i := 0; i < 3; i++ {
		require.NoError(t, draft.AddBlock(topicModel.BlockParagraph))
	}

	require.NoError(t, draft.RemoveBlock(1))
	require.Len(t, draft.Blocks, 2)
	// removal leaves the original numbering alone
	assert.Equal(t, 1, draft.Blocks[0].BlockOrder)
	assert.Equal(t, 3, draft.Blocks[1].BlockOrder)

	draft.NormalizeBlockOrder()
	assert.Equal(t, 1, draft.Blocks[0].BlockOrder)
	assert.Equal(t, 2, draft.Blocks[1].BlockOrder)
}

func TestRemoveBlockOutOfRange(t *testing.T) {
	draft := &TopicDraft{}
	require.NoError(t, draft.AddBlock(topicModel.BlockParagraph))

	assert.ErrorIs(t, draft.RemoveBlock(-1), ErrBlockOutOfRange)
	assert.ErrorIs(t, draft.RemoveBlock(1), ErrBlockOutOfRange)
	assert.Len(t, draft.Blocks, 1)
}

func TestUpdateBlockField(t *testing.T) {
	draft := &TopicDraft{}
	require.NoError(t, draft.AddBlock(topicModel.BlockParagraph))

	require.NoError(t, draft.UpdateBlockField(0, "content", "body text"))
	require.NoError(t, draft.UpdateBlockField(0, "title", "Intro"))
	require.NoError(t, draft.UpdateBlockField(0, "type", topicModel.BlockVideo))

	assert.Equal(t, "body text", draft.Blocks[0].BlockContent)
	assert.Equal(t, "Intro", draft.Blocks[0].BlockTitle)
	assert.Equal(t, topicModel.BlockVideo, draft.Blocks[0].BlockType)

	assert.ErrorIs(t, draft.UpdateBlockField(0, "type", "carousel"), ErrUnknownBlockType)
	assert.ErrorIs(t, draft.UpdateBlockField(0, "color", "red"), ErrUnknownBlockField)
	assert.ErrorIs(t, draft.UpdateBlockField(4, "content", "x"), ErrBlockOutOfRange)
}

func TestResolveSharingModesAreExclusive(t *testing.T) {
	everyoneID := uuid.New()
	settings := settingsWithEveryone(everyoneID)
	groupA, userA := uuid.New(), uuid.New()

	// "all" resolves to the pinned everyone group and nothing else,
	// even when the draft carries stale selections.
	draft := &TopicDraft{
		ShareMode: ShareModeAll,
		GroupIDs:  []uuid.UUID{groupA},
		UserIDs:   []uuid.UUID{userA},
	}
	groups, users, err := ResolveSharing(draft, settings)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{everyoneID}, groups)
	assert.Empty(t, users)

	draft.ShareMode = ShareModeDepartments
	groups, users, err = ResolveSharing(draft, settings)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{groupA}, groups)
	assert.Empty(t, users)

	draft.ShareMode = ShareModeUsers
	groups, users, err = ResolveSharing(draft, settings)
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.Equal(t, []uuid.UUID{userA}, users)
}

func TestResolveSharingRejectsUnpinnedEveryoneGroup(t *testing.T) {
	draft := &TopicDraft{ShareMode: ShareModeAll}

	_, _, err := ResolveSharing(draft, nil)
	assert.ErrorIs(t, err, ErrNoEveryoneGroup)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = ResolveSharing(draft, &settingsModel.AppSettingModel{})
	assert.ErrorIs(t, err, ErrNoEveryoneGroup)
}

func TestResolveSharingUnknownMode(t *testing.T) {
	draft := &TopicDraft{ShareMode: "everyone"}
	_, _, err := ResolveSharing(draft, settingsWithEveryone(uuid.New()))
	assert.ErrorIs(t, err, ErrUnknownShareMode)
}

func TestValidateDraft(t *testing.T) {
	settings := settingsWithEveryone(uuid.New(), "Onboarding", "Compliance")

	valid := &TopicDraft{Title: "Security 101", Category: "Compliance", ReadTime: 3}
	assert.NoError(t, ValidateDraft(valid, settings))

	blank := &TopicDraft{Title: "   ", ReadTime: 3}
	assert.ErrorIs(t, ValidateDraft(blank, settings), ErrEmptyTitle)

	zeroRead := &TopicDraft{Title: "T", ReadTime: 0}
	assert.ErrorIs(t, ValidateDraft(zeroRead, settings), ErrBadReadTime)

	offList := &TopicDraft{Title: "T", Category: "Cooking", ReadTime: 1}
	assert.ErrorIs(t, ValidateDraft(offList, settings), ErrBadCategory)

	// empty category is allowed; the save defaults it
	noCategory := &TopicDraft{Title: "T", ReadTime: 1}
	assert.NoError(t, ValidateDraft(noCategory, settings))

	badBlock := &TopicDraft{
		Title:    "T",
		Category: "Onboarding",
		ReadTime: 1,
		Blocks:   []topicModel.TopicContentBlockModel{{BlockType: "carousel"}},
	}
	assert.ErrorIs(t, ValidateDraft(badBlock, settings), ErrUnknownBlockType)
}

// Blocks with empty content pass validation; they are skipped when the
// reader view and the quiz prompt are assembled.
func TestValidateDraftAllowsEmptyBlocks(t *testing.T) {
	draft := &TopicDraft{
		Title:    "T",
		ReadTime: 1,
		Blocks: []topicModel.TopicContentBlockModel{
			{BlockType: topicModel.BlockParagraph},
			{BlockType: topicModel.BlockImage},
		},
	}
	assert.NoError(t, ValidateDraft(draft, settingsWithEveryone(uuid.New())))
}

func TestBuildTopicRowDefaults(t *testing.T) {
	row := buildTopicRow(&TopicDraft{Title: "  Spaced  ", ReadTime: 3})

	assert.Equal(t, "Spaced", row.TopicTitle)
	assert.Equal(t, "General", row.TopicCategory)
	assert.NotEqual(t, uuid.Nil, row.TopicID)
	// a fresh row leaves CreatedAt to autoCreateTime
	assert.True(t, row.CreatedAt.IsZero())
}

// Editing a topic rebuilds the row from the draft, so the stored
// creation timestamp must be carried over or the UPDATE resets it to
// the zero time and the created_at ordering of listings breaks.
func TestSaveCarriesCreatedAtOnUpdate(t *testing.T) {
	existing := uuid.New()
	original := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	row := buildTopicRow(&TopicDraft{TopicID: existing, Title: "T", ReadTime: 1})
	require.Equal(t, existing, row.TopicID)
	require.True(t, row.CreatedAt.IsZero())

	carryCreatedAt(&row, original)
	assert.Equal(t, original, row.CreatedAt)

	// when the lookup found nothing, the insert path keeps the zero
	// value so autoCreateTime can fill it
	fresh := buildTopicRow(&TopicDraft{Title: "T", ReadTime: 1})
	carryCreatedAt(&fresh, time.Time{})
	assert.True(t, fresh.CreatedAt.IsZero())
}
