package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "skillshots_backend/internals/features/progress/model"
	topicModel "skillshots_backend/internals/features/topics/model"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrQuizNotPassed = errors.New("quiz not passed for this topic")
)

// Points per read-time minute, awarded once when a topic is completed.
const pointsPerReadMinute = 10

/* ==========================
   Transition rules
========================== */

type completionAction int

const (
	// actionAlreadyCompleted: the row is Completed; answer it as-is and
	// award nothing. The quiz gate is not consulted, so completion
	// survives a later discarded or failed attempt.
	actionAlreadyCompleted completionAction = iota
	// actionComplete: Pending with a passed quiz; transition and award.
	actionComplete
	// actionRejected: Pending without a passed quiz; leave untouched.
	actionRejected
)

// decideCompletion maps (current progress row, quiz gate result) to
// the action MarkComplete takes. Only actionComplete writes anything,
// which makes the point award once-only across repeated calls.
func decideCompletion(progress *progressModel.TopicProgressModel, quizPassed bool) completionAction {
	if progress.IsCompleted() {
		return actionAlreadyCompleted
	}
	if !quizPassed {
		return actionRejected
	}
	return actionComplete
}

// completionPoints is the once-only award for completing a topic.
func completionPoints(readTimeMinutes int) int {
	if readTimeMinutes <= 0 {
		return 0
	}
	return readTimeMinutes * pointsPerReadMinute
}

// QuizGate answers whether the user has a passed quiz attempt for the
// topic. Satisfied by the quiz attempt store.
type QuizGate interface {
	Passed(userID, topicID uuid.UUID) bool
}

type ProgressService struct {
	DB   *gorm.DB
	Gate QuizGate
}

func NewProgressService(db *gorm.DB, gate QuizGate) *ProgressService {
	return &ProgressService{DB: db, Gate: gate}
}

// MarkComplete transitions (user, topic) from Pending to Completed.
// Idempotent: completing an already-completed topic is a no-op success.
// The transition requires a passed quiz attempt; a failed or missing
// attempt leaves the status untouched.
func (s *ProgressService) MarkComplete(userID, topicID uuid.UUID) (*progressModel.TopicProgressModel, error) {
	var topic topicModel.TopicModel
	if err := s.DB.Where("topic_id = ?", topicID).First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	var progress progressModel.TopicProgressModel
	err := s.DB.Where("topic_progress_user_id = ? AND topic_progress_topic_id = ?", userID, topicID).
		First(&progress).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = progressModel.TopicProgressModel{
			TopicProgressUserID:  userID,
			TopicProgressTopicID: topicID,
			TopicProgressStatus:  progressModel.StatusPending,
		}
	default:
		return nil, err
	}

	passed := s.Gate != nil && s.Gate.Passed(userID, topicID)
	switch decideCompletion(&progress, passed) {
	case actionAlreadyCompleted:
		return &progress, nil
	case actionRejected:
		return nil, ErrQuizNotPassed
	}

	now := time.Now().UTC()
	progress.TopicProgressStatus = progressModel.StatusCompleted
	progress.TopicProgressCompletedAt = &now

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		return awardPoints(tx, userID, completionPoints(topic.TopicReadTime))
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// StatusByTopic returns the user's progress status per topic id.
// Topics without a row are Pending.
func (s *ProgressService) StatusByTopic(userID uuid.UUID) (map[uuid.UUID]string, error) {
	var rows []progressModel.TopicProgressModel
	if err := s.DB.Where("topic_progress_user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	statuses := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		statuses[r.TopicProgressTopicID] = r.TopicProgressStatus
	}
	return statuses, nil
}

func awardPoints(tx *gorm.DB, userID uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}
	var row progressModel.UserPointModel
	err := tx.Where("user_point_user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = progressModel.UserPointModel{
			UserPointUserID: userID,
			UserPointTotal:  points,
		}
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&row).
		Update("user_point_total", gorm.Expr("user_point_total + ?", points)).Error
}
