package controller

import (
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillshots_backend/internals/features/genai/service"
	topicModel "skillshots_backend/internals/features/topics/model"
	helpers "skillshots_backend/internals/helpers"
)

type AIController struct {
	DB    *gorm.DB
	GenAI *service.Service
}

func NewAIController(db *gorm.DB, genai *service.Service) *AIController {
	return &AIController{DB: db, GenAI: genai}
}

func notConfigured(c *fiber.Ctx) error {
	return helpers.ErrorWithKind(c, fiber.StatusServiceUnavailable, helpers.KindExternalService,
		"AI features are not available")
}

func upstreamError(c *fiber.Ctx, op string, err error) error {
	log.Printf("[ERROR] %s failed: %v", op, err)
	return helpers.ErrorWithKind(c, fiber.StatusBadGateway, helpers.KindExternalService,
		"The AI assistant is unavailable right now. Please try again.")
}

type chatRequest struct {
	Prompt   string `json:"prompt"`
	Thinking bool   `json:"thinking"`
}

// POST /api/ai/chat
func (ctrl *AIController) Chat(c *fiber.Ctx) error {
	if ctrl.GenAI == nil {
		return notConfigured(c)
	}
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return helpers.Error(c, fiber.StatusBadRequest, "Prompt is required")
	}

	reply, err := ctrl.GenAI.ChatbotReply(c.UserContext(), req.Prompt, req.Thinking)
	if err != nil {
		return upstreamError(c, "chatbot reply", err)
	}
	return helpers.Success(c, "OK", fiber.Map{"reply": reply})
}

type askRequest struct {
	Question string `json:"question"`
}

// POST /api/topics/:id/ask
// Answers grounded in the topic's own content blocks.
func (ctrl *AIController) AskQuestion(c *fiber.Ctx) error {
	if ctrl.GenAI == nil {
		return notConfigured(c)
	}
	topicID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid topic id")
	}
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Question) == "" {
		return helpers.Error(c, fiber.StatusBadRequest, "Question is required")
	}

	blocks, err := ctrl.loadBlocks(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.Error(c, fiber.StatusNotFound, "Topic not found")
		}
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to load topic content")
	}

	answer, err := ctrl.GenAI.AskQuestion(c.UserContext(), blocks, req.Question)
	if err != nil {
		return upstreamError(c, "topic question", err)
	}
	return helpers.Success(c, "OK", fiber.Map{"answer": answer})
}

type videoSummaryRequest struct {
	Title string `json:"title"`
}

// POST /api/ai/video-summary
func (ctrl *AIController) VideoSummary(c *fiber.Ctx) error {
	if ctrl.GenAI == nil {
		return notConfigured(c)
	}
	var req videoSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" {
		return helpers.Error(c, fiber.StatusBadRequest, "Video title is required")
	}

	summary, err := ctrl.GenAI.SummarizeVideo(c.UserContext(), req.Title)
	if err != nil {
		return upstreamError(c, "video summary", err)
	}
	return helpers.Success(c, "OK", fiber.Map{"summary": summary})
}

type speechRequest struct {
	Text string `json:"text"`
}

const maxSpeechChars = 4096

// truncateSpeechText caps the text at max bytes without splitting a
// multi-byte rune, which would send invalid UTF-8 upstream.
func truncateSpeechText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// POST /api/ai/speech
// Responds with raw MP3 audio rather than the JSON envelope.
func (ctrl *AIController) Speech(c *fiber.Ctx) error {
	if ctrl.GenAI == nil {
		return notConfigured(c)
	}
	var req speechRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return helpers.Error(c, fiber.StatusBadRequest, "Text is required")
	}
	text = truncateSpeechText(text, maxSpeechChars)

	audio, err := ctrl.GenAI.SynthesizeSpeech(c.UserContext(), text)
	if err != nil {
		return upstreamError(c, "speech synthesis", err)
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Status(fiber.StatusOK).Send(audio)
}

type courseDraftRequest struct {
	Prompt string `json:"prompt"`
}

// POST /api/ai/course-draft (Creator only, enforced at the route)
func (ctrl *AIController) CourseDraft(c *fiber.Ctx) error {
	if ctrl.GenAI == nil {
		return notConfigured(c)
	}
	var req courseDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return helpers.Error(c, fiber.StatusBadRequest, "Prompt is required")
	}

	draft, err := ctrl.GenAI.GenerateCourseDraft(c.UserContext(), req.Prompt)
	if err != nil {
		return upstreamError(c, "course draft", err)
	}
	return helpers.Success(c, "Draft ready", draft)
}

func (ctrl *AIController) loadBlocks(topicID uuid.UUID) ([]topicModel.TopicContentBlockModel, error) {
	var count int64
	if err := ctrl.DB.Model(&topicModel.TopicModel{}).
		Where("topic_id = ?", topicID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var blocks []topicModel.TopicContentBlockModel
	if err := ctrl.DB.Where("block_topic_id = ?", topicID).
		Order("block_order ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}
