package topics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settingsModel "skillshots_backend/internals/features/settings/model"
	settingsService "skillshots_backend/internals/features/settings/service"
	topicService "skillshots_backend/internals/features/topics/service"
)

// A Creator must be able to open a seeded topic and re-save it without
// touching anything, so every sample topic has to validate against the
// default settings a fresh install gets.
func TestSampleTopicsValidateAgainstDefaultSettings(t *testing.T) {
	everyoneID := uuid.New()
	settings := &settingsModel.AppSettingModel{
		AppSettingCategories: settingsService.DefaultCategories,
		EveryoneGroupID:      &everyoneID,
	}

	require.NotEmpty(t, sampleTopics)
	for _, s := range sampleTopics {
		draft := &topicService.TopicDraft{
			Title:    s.Title,
			Category: s.Category,
			AuthorID: uuid.New(),
			ReadTime: s.ReadTime,
			IsSOP:    s.IsSOP,
			Blocks:   s.Blocks,
		}
		assert.NoErrorf(t, topicService.ValidateDraft(draft, settings), "sample topic %q", s.Title)
	}
}
