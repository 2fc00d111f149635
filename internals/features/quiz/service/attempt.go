package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyQuiz          = errors.New("quiz has no questions")
	ErrMalformedQuestion  = errors.New("malformed quiz question")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrOptionOutOfRange   = errors.New("option index out of range")
	ErrAttemptNotFound    = errors.New("no active quiz attempt")
)

// Question is one generated multiple-choice question. Quizzes are
// ephemeral: generated on demand, scored in-session, never persisted.
type Question struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// ValidateQuestions enforces the generator contract: at least one
// question, each with at least two options and an in-range answer.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyQuiz
	}
	for i, q := range questions {
		if q.Question == "" || len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d", ErrMalformedQuestion, i+1)
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d answer index", ErrMalformedQuestion, i+1)
		}
	}
	return nil
}

/* ==========================
   Attempt
========================== */

const unanswered = -1

// Attempt is one pass through a generated question set. Answers lock on
// first selection; re-answering returns the recorded result unchanged.
type Attempt struct {
	AttemptID uuid.UUID
	UserID    uuid.UUID
	TopicID   uuid.UUID
	Questions []Question
	StartedAt time.Time

	mu      sync.Mutex
	answers []int
}

func NewAttempt(userID, topicID uuid.UUID, questions []Question) (*Attempt, error) {
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}
	return &Attempt{
		AttemptID: uuid.New(),
		UserID:    userID,
		TopicID:   topicID,
		Questions: questions,
		StartedAt: time.Now().UTC(),
		answers:   answers,
	}, nil
}

// AnswerResult is what the caller gets back after selecting an option.
type AnswerResult struct {
	Locked             bool `json:"locked"` // true when this selection was ignored
	SelectedIndex      int  `json:"selected_index"`
	Correct            bool `json:"correct"`
	CorrectAnswerIndex int  `json:"correct_answer_index"`
}

// Answer records the selection for questionIndex. The first selection
// wins; later calls report the already-recorded answer with Locked set.
func (a *Attempt) Answer(questionIndex, optionIndex int) (AnswerResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if questionIndex < 0 || questionIndex >= len(a.Questions) {
		return AnswerResult{}, ErrQuestionOutOfRange
	}
	q := a.Questions[questionIndex]

	if recorded := a.answers[questionIndex]; recorded != unanswered {
		return AnswerResult{
			Locked:             true,
			SelectedIndex:      recorded,
			Correct:            recorded == q.CorrectAnswerIndex,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
		}, nil
	}

	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return AnswerResult{}, ErrOptionOutOfRange
	}

	a.answers[questionIndex] = optionIndex
	return AnswerResult{
		SelectedIndex:      optionIndex,
		Correct:            optionIndex == q.CorrectAnswerIndex,
		CorrectAnswerIndex: q.CorrectAnswerIndex,
	}, nil
}

// Score counts correct answers so far.
func (a *Attempt) Score() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scoreLocked()
}

func (a *Attempt) scoreLocked() int {
	score := 0
	for i, ans := range a.answers {
		if ans != unanswered && ans == a.Questions[i].CorrectAnswerIndex {
			score++
		}
	}
	return score
}

// AllAnswered reports whether every question has a recorded answer.
func (a *Attempt) AllAnswered() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allAnsweredLocked()
}

func (a *Attempt) allAnsweredLocked() bool {
	for _, ans := range a.answers {
		if ans == unanswered {
			return false
		}
	}
	return true
}

// Passed: every question answered and at least one correct.
func (a *Attempt) Passed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allAnsweredLocked() && a.scoreLocked() >= 1
}

/* ==========================
   Attempt store

   In-memory, one live attempt per (user, topic). This is session
   state, not storage: regeneration replaces the attempt, restarts
   drop it, and a passed attempt is what mark-complete consults.
========================== */

type attemptKey struct {
	userID  uuid.UUID
	topicID uuid.UUID
}

type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[attemptKey]*Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[attemptKey]*Attempt)}
}

// Start creates a fresh attempt, replacing any previous one for the
// same (user, topic). Retries are unlimited.
func (s *AttemptStore) Start(userID, topicID uuid.UUID, questions []Question) (*Attempt, error) {
	attempt, err := NewAttempt(userID, topicID, questions)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.attempts[attemptKey{userID, topicID}] = attempt
	s.mu.Unlock()
	return attempt, nil
}

func (s *AttemptStore) Get(userID, topicID uuid.UUID) (*Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[attemptKey{userID, topicID}]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// Passed implements the quiz gate consulted by the progress tracker.
func (s *AttemptStore) Passed(userID, topicID uuid.UUID) bool {
	attempt, err := s.Get(userID, topicID)
	if err != nil {
		return false
	}
	return attempt.Passed()
}

func (s *AttemptStore) Discard(userID, topicID uuid.UUID) {
	s.mu.Lock()
	delete(s.attempts, attemptKey{userID, topicID})
	s.mu.Unlock()
}
