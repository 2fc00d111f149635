package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeQuestions() []Question {
	return []Question{
		{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 0},
		{Question: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 1},
		{Question: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 2},
	}
}

func TestValidateQuestions(t *testing.T) {
	assert.NoError(t, ValidateQuestions(threeQuestions()))

	assert.ErrorIs(t, ValidateQuestions(nil), ErrEmptyQuiz)
	assert.ErrorIs(t, ValidateQuestions([]Question{}), ErrEmptyQuiz)

	oneOption := []Question{{Question: "Q", Options: []string{"only"}, CorrectAnswerIndex: 0}}
	assert.ErrorIs(t, ValidateQuestions(oneOption), ErrMalformedQuestion)

	badIndex := []Question{{Question: "Q", Options: []string{"a", "b"}, CorrectAnswerIndex: 2}}
	assert.ErrorIs(t, ValidateQuestions(badIndex), ErrMalformedQuestion)

	noText := []Question{{Options: []string{"a", "b"}, CorrectAnswerIndex: 0}}
	assert.ErrorIs(t, ValidateQuestions(noText), ErrMalformedQuestion)
}

func TestAnswerLocksOnFirstSelection(t *testing.T) {
	attempt, err := NewAttempt(uuid.New(), uuid.New(), threeQuestions())
	require.NoError(t, err)

	first, err := attempt.Answer(0, 3) // wrong
	require.NoError(t, err)
	assert.False(t, first.Locked)
	assert.False(t, first.Correct)
	assert.Equal(t, 3, first.SelectedIndex)
	assert.Equal(t, 0, first.CorrectAnswerIndex)

	// changing to the correct option is ignored
	second, err := attempt.Answer(0, 0)
	require.NoError(t, err)
	assert.True(t, second.Locked)
	assert.False(t, second.Correct)
	assert.Equal(t, 3, second.SelectedIndex)
	assert.Equal(t, 0, attempt.Score())
}

func TestAnswerRangeChecks(t *testing.T) {
	attempt, err := NewAttempt(uuid.New(), uuid.New(), threeQuestions())
	require.NoError(t, err)

	_, err = attempt.Answer(5, 0)
	assert.ErrorIs(t, err, ErrQuestionOutOfRange)
	_, err = attempt.Answer(-1, 0)
	assert.ErrorIs(t, err, ErrQuestionOutOfRange)
	_, err = attempt.Answer(0, 4)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	_, err = attempt.Answer(0, -1)
	assert.ErrorIs(t, err, ErrOptionOutOfRange)

	// a failed selection does not lock the question
	res, err := attempt.Answer(0, 0)
	require.NoError(t, err)
	assert.False(t, res.Locked)
	assert.True(t, res.Correct)
}

func TestPassedRequiresAllAnsweredAndOneCorrect(t *testing.T) {
	attempt, err := NewAttempt(uuid.New(), uuid.New(), threeQuestions())
	require.NoError(t, err)

	// one correct answer, but two questions still open
	_, err = attempt.Answer(0, 0)
	require.NoError(t, err)
	assert.False(t, attempt.AllAnswered())
	assert.False(t, attempt.Passed())

	_, err = attempt.Answer(1, 3) // wrong
	require.NoError(t, err)
	_, err = attempt.Answer(2, 3) // wrong
	require.NoError(t, err)

	assert.True(t, attempt.AllAnswered())
	assert.Equal(t, 1, attempt.Score())
	assert.True(t, attempt.Passed())
}

func TestAllWrongDoesNotPass(t *testing.T) {
	attempt, err := NewAttempt(uuid.New(), uuid.New(), threeQuestions())
	require.NoError(t, err)

	_, _ = attempt.Answer(0, 3)
	_, _ = attempt.Answer(1, 3)
	_, _ = attempt.Answer(2, 3)

	assert.True(t, attempt.AllAnswered())
	assert.Equal(t, 0, attempt.Score())
	assert.False(t, attempt.Passed())
}

func TestStoreReplacesAttemptOnStart(t *testing.T) {
	store := NewAttemptStore()
	userID, topicID := uuid.New(), uuid.New()

	first, err := store.Start(userID, topicID, threeQuestions())
	require.NoError(t, err)
	_, _ = first.Answer(0, 0)

	// regeneration resets the slate
	second, err := store.Start(userID, topicID, threeQuestions())
	require.NoError(t, err)
	assert.NotEqual(t, first.AttemptID, second.AttemptID)

	got, err := store.Get(userID, topicID)
	require.NoError(t, err)
	assert.Equal(t, second.AttemptID, got.AttemptID)
	assert.Equal(t, 0, got.Score())
}

func TestStoreGateAndDiscard(t *testing.T) {
	store := NewAttemptStore()
	userID, topicID := uuid.New(), uuid.New()

	assert.False(t, store.Passed(userID, topicID))

	attempt, err := store.Start(userID, topicID, threeQuestions())
	require.NoError(t, err)
	assert.False(t, store.Passed(userID, topicID))

	_, _ = attempt.Answer(0, 0)
	_, _ = attempt.Answer(1, 1)
	_, _ = attempt.Answer(2, 2)
	assert.True(t, store.Passed(userID, topicID))

	// attempts are per (user, topic)
	assert.False(t, store.Passed(uuid.New(), topicID))
	assert.False(t, store.Passed(userID, uuid.New()))

	store.Discard(userID, topicID)
	_, err = store.Get(userID, topicID)
	assert.ErrorIs(t, err, ErrAttemptNotFound)
	assert.False(t, store.Passed(userID, topicID))
}

func TestStartRejectsEmptyQuiz(t *testing.T) {
	store := NewAttemptStore()
	_, err := store.Start(uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrEmptyQuiz)
}
