package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	genaiService "skillshots_backend/internals/features/genai/service"
	"skillshots_backend/internals/features/quiz/service"
	topicModel "skillshots_backend/internals/features/topics/model"
	helpers "skillshots_backend/internals/helpers"
)

type QuizController struct {
	DB       *gorm.DB
	GenAI    *genaiService.Service
	Attempts *service.AttemptStore
}

func NewQuizController(db *gorm.DB, genai *genaiService.Service, attempts *service.AttemptStore) *QuizController {
	return &QuizController{DB: db, GenAI: genai, Attempts: attempts}
}

// POST /api/topics/:id/quiz
// Generates a fresh quiz for the topic, replacing any live attempt.
// Answers are scored server-side, so the payload never includes the
// correct indexes.
func (ctrl *QuizController) Generate(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	var blocks []topicModel.TopicContentBlockModel
	if err := ctrl.DB.Where("block_topic_id = ?", topicID).
		Order("block_order ASC").Find(&blocks).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load topic content")
	}
	if len(blocks) == 0 {
		var count int64
		ctrl.DB.Model(&topicModel.TopicModel{}).Where("topic_id = ?", topicID).Count(&count)
		if count == 0 {
			return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
		}
	}

	if ctrl.GenAI == nil {
		return helpers.ErrorWithKind(c, fiber.StatusServiceUnavailable, helpers.KindExternalService,
			"Quiz generation is not available")
	}

	questions, err := ctrl.GenAI.GenerateQuiz(c.UserContext(), blocks)
	if err != nil {
		log.Println("[ERROR] quiz generation failed:", err)
		return helpers.ErrorWithKind(c, fiber.StatusBadGateway, helpers.KindExternalService,
			"Could not generate a quiz right now. Please try again.")
	}

	attempt, err := ctrl.Attempts.Start(userID, topicID, questions)
	if err != nil {
		// generator contract violation; treat as an upstream failure
		return helpers.ErrorWithKind(c, fiber.StatusBadGateway, helpers.KindExternalService,
			"Could not generate a quiz right now. Please try again.")
	}

	return helpers.SuccessWithCode(c, fiber.StatusCreated, "Quiz ready", fiber.Map{
		"attempt_id": attempt.AttemptID,
		"questions":  publicQuestions(attempt.Questions),
	})
}

type answerRequest struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}

// POST /api/topics/:id/quiz/answer
// First selection per question wins; a repeat returns the recorded
// answer with "locked" set and changes nothing.
func (ctrl *QuizController) Answer(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	attempt, err := ctrl.Attempts.Get(userID, topicID)
	if errors.Is(err, service.ErrAttemptNotFound) {
		return helpers.Error(c, fiber.StatusNotFound, "No active quiz for this topic")
	}

	result, err := attempt.Answer(req.QuestionIndex, req.OptionIndex)
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, err.Error())
	}
	return helpers.Success(c, "Answer recorded", result)
}

// GET /api/topics/:id/quiz/result
func (ctrl *QuizController) Result(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	attempt, err := ctrl.Attempts.Get(userID, topicID)
	if errors.Is(err, service.ErrAttemptNotFound) {
		return helpers.Error(c, fiber.StatusNotFound, "No active quiz for this topic")
	}

	return helpers.Success(c, "OK", fiber.Map{
		"score":        attempt.Score(),
		"total":        len(attempt.Questions),
		"all_answered": attempt.AllAnswered(),
		"passed":       attempt.Passed(),
	})
}

// DELETE /api/topics/:id/quiz: discard the attempt. Retries are
// unlimited; the usual path is simply generating a new quiz.
func (ctrl *QuizController) Discard(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}
	ctrl.Attempts.Discard(userID, topicID)
	return helpers.Success(c, "Quiz discarded", nil)
}

func publicQuestions(questions []service.Question) []fiber.Map {
	out := make([]fiber.Map, 0, len(questions))
	for i, q := range questions {
		out = append(out, fiber.Map{
			"index":    i,
			"question": q.Question,
			"options":  q.Options,
		})
	}
	return out
}
