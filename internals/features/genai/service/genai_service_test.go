package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillshots_backend/internals/configs"
	"skillshots_backend/internals/features/quiz/service"
	topicModel "skillshots_backend/internals/features/topics/model"
)

const sampleQuizJSON = `{"questions":[
	{"question":"What locks first?","options":["a","b","c","d"],"correctAnswerIndex":1},
	{"question":"What scores?","options":["a","b","c","d"],"correctAnswerIndex":0},
	{"question":"What passes?","options":["a","b","c","d"],"correctAnswerIndex":3}
]}`

func TestParseQuizJSONEnvelope(t *testing.T) {
	questions, err := ParseQuizJSON(sampleQuizJSON)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "What locks first?", questions[0].Question)
	assert.Equal(t, 1, questions[0].CorrectAnswerIndex)
}

func TestParseQuizJSONStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + sampleQuizJSON + "\n```"
	questions, err := ParseQuizJSON(fenced)
	require.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestParseQuizJSONBareArray(t *testing.T) {
	bare := `[{"question":"Q","options":["a","b"],"correctAnswerIndex":0}]`
	questions, err := ParseQuizJSON(bare)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestParseQuizJSONRejectsGarbage(t *testing.T) {
	_, err := ParseQuizJSON("sorry, I cannot do that")
	assert.Error(t, err)
}

func TestParseQuizJSONRejectsContractViolations(t *testing.T) {
	_, err := ParseQuizJSON(`{"questions":[]}`)
	assert.Error(t, err)

	_, err = ParseQuizJSON(`{"questions":[{"question":"Q","options":["only"],"correctAnswerIndex":0}]}`)
	assert.ErrorIs(t, err, service.ErrMalformedQuestion)

	_, err = ParseQuizJSON(`{"questions":[{"question":"Q","options":["a","b"],"correctAnswerIndex":5}]}`)
	assert.ErrorIs(t, err, service.ErrMalformedQuestion)
}

func TestFlattenBlocks(t *testing.T) {
	blocks := []topicModel.TopicContentBlockModel{
		{BlockType: topicModel.BlockParagraph, BlockContent: "First paragraph."},
		{BlockType: topicModel.BlockParagraph}, // empty, skipped
		{BlockType: topicModel.BlockVideo, BlockTitle: "Safety walkthrough", BlockContent: "https://example.com/v"},
		{BlockType: topicModel.BlockParagraph, BlockContent: "Second paragraph."},
	}

	text := FlattenBlocks(blocks)
	assert.Contains(t, text, "First paragraph.")
	assert.Contains(t, text, "Second paragraph.")
	assert.Contains(t, text, "[video: Safety walkthrough]")
	assert.NotContains(t, text, "https://example.com/v")
}

func TestFlattenBlocksEmpty(t *testing.T) {
	assert.Equal(t, "", FlattenBlocks(nil))
	assert.Equal(t, "", FlattenBlocks([]topicModel.TopicContentBlockModel{
		{BlockType: topicModel.BlockParagraph, BlockContent: "   "},
	}))
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(configs.GenAIConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	svc, err := New(configs.GenAIConfig{APIKey: "sk-test", ChatModel: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
