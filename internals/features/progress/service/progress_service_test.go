package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	progressModel "skillshots_backend/internals/features/progress/model"
)

func pendingRow() *progressModel.TopicProgressModel {
	return &progressModel.TopicProgressModel{TopicProgressStatus: progressModel.StatusPending}
}

func completedRow() *progressModel.TopicProgressModel {
	return &progressModel.TopicProgressModel{TopicProgressStatus: progressModel.StatusCompleted}
}

func TestDecideCompletionRequiresPassedQuiz(t *testing.T) {
	assert.Equal(t, actionComplete, decideCompletion(pendingRow(), true))
	assert.Equal(t, actionRejected, decideCompletion(pendingRow(), false))
}

func TestDecideCompletionRejectionLeavesStatusPending(t *testing.T) {
	row := pendingRow()
	assert.Equal(t, actionRejected, decideCompletion(row, false))
	assert.Equal(t, progressModel.StatusPending, row.TopicProgressStatus)
}

func TestDecideCompletionIsIdempotent(t *testing.T) {
	// A completed row stays completed and awards nothing more,
	// regardless of what the quiz gate says now.
	assert.Equal(t, actionAlreadyCompleted, decideCompletion(completedRow(), true))
	assert.Equal(t, actionAlreadyCompleted, decideCompletion(completedRow(), false))
}

func TestCompletionPoints(t *testing.T) {
	assert.Equal(t, 30, completionPoints(3))
	assert.Equal(t, 10, completionPoints(1))
	assert.Equal(t, 0, completionPoints(0))
	assert.Equal(t, 0, completionPoints(-5))
}
