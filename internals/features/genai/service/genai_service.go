package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"skillshots_backend/internals/configs"
	quizService "skillshots_backend/internals/features/quiz/service"
	topicModel "skillshots_backend/internals/features/topics/model"
)

// ErrExternal marks any upstream generation failure. Callers surface a
// "try again" condition; nothing in the core changes state on it.
var ErrExternal = errors.New("content generation service unavailable")

var ErrNotConfigured = errors.New("content generation service is not configured")

// Service wraps the generative-AI provider behind the operations the
// application needs. Constructed once from config; no ambient env reads.
type Service struct {
	client *openai.Client
	cfg    configs.GenAIConfig
}

func New(cfg configs.GenAIConfig) (*Service, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	return &Service{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
	}, nil
}

/* ==========================
   Quiz generation
========================== */

const quizPrompt = `Based on the following text, generate a 3-question multiple-choice quiz to test understanding. Each question should have 4 options.
Text:
---
%s
---
Respond with JSON only, in the shape {"questions":[{"question":"...","options":["...","...","...","..."],"correctAnswerIndex":0}]}.`

// GenerateQuiz asks the provider for a quiz over the topic's readable
// content and validates the result against the evaluator contract.
func (s *Service) GenerateQuiz(ctx context.Context, blocks []topicModel.TopicContentBlockModel) ([]quizService.Question, error) {
	text := FlattenBlocks(blocks)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: topic has no readable content", ErrExternal)
	}

	raw, err := s.chat(ctx, s.cfg.ChatModel, "", fmt.Sprintf(quizPrompt, text), true)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuizJSON(raw)
	if err != nil {
		log.Printf("[WARN] quiz generation returned unusable payload: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}
	return questions, nil
}

// ParseQuizJSON decodes a quiz payload and enforces the generator
// contract (no empty quizzes, options in range). Exported for tests.
func ParseQuizJSON(raw string) ([]quizService.Question, error) {
	raw = stripCodeFences(raw)

	var envelope struct {
		Questions []quizService.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil || len(envelope.Questions) == 0 {
		// some models reply with a bare array
		var bare []quizService.Question
		if err2 := json.Unmarshal([]byte(raw), &bare); err2 != nil {
			return nil, fmt.Errorf("cannot decode quiz JSON: %v", err)
		}
		envelope.Questions = bare
	}

	if err := quizService.ValidateQuestions(envelope.Questions); err != nil {
		return nil, err
	}
	return envelope.Questions, nil
}

/* ==========================
   Q&A, chat, summaries
========================== */

// AskQuestion answers a learner question grounded in the topic content.
func (s *Service) AskQuestion(ctx context.Context, blocks []topicModel.TopicContentBlockModel, question string) (string, error) {
	system := "You are a helpful learning assistant. Answer strictly from the provided course material. If the material does not cover the question, say so briefly."
	prompt := fmt.Sprintf("Course material:\n---\n%s\n---\nQuestion: %s", FlattenBlocks(blocks), question)
	return s.chat(ctx, s.cfg.ChatModel, system, prompt, false)
}

// ChatbotReply powers the floating assistant. Thinking mode switches to
// the heavier model.
func (s *Service) ChatbotReply(ctx context.Context, prompt string, thinking bool) (string, error) {
	model := s.cfg.ChatModel
	if thinking {
		model = s.cfg.ReasoningModel
	}
	return s.chat(ctx, model, "You are SkillShots' learning assistant. Be concise and friendly.", prompt, false)
}

// SummarizeVideo guesses the key learning points of a training video
// from its title.
func (s *Service) SummarizeVideo(ctx context.Context, videoTitle string) (string, error) {
	prompt := fmt.Sprintf(
		`You are a helpful learning assistant. A user is watching a training video titled %q. Based on this title, generate a concise summary of the likely key learning points from the video. Present them as a short bulleted list.`,
		videoTitle,
	)
	return s.chat(ctx, s.cfg.ReasoningModel, "", prompt, false)
}

/* ==========================
   Text to speech
========================== */

// SynthesizeSpeech converts learning material to audio bytes.
func (s *Service) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.cfg.SpeechModel),
		Input: "Please read the following learning material clearly and at a moderate pace: " + text,
		Voice: openai.SpeechVoice(s.cfg.SpeechVoice),
	})
	if err != nil {
		log.Printf("[ERROR] speech synthesis failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: no audio data received", ErrExternal)
	}
	return audio, nil
}

/* ==========================
   Course drafting
========================== */

// CourseDraft is an AI-proposed topic skeleton a Creator can edit
// before saving; it never touches the catalog by itself.
type CourseDraft struct {
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	ReadTime   int      `json:"readTime"`
	Paragraphs []string `json:"paragraphs"`
}

const courseDraftPrompt = `Create a short micro-learning course about: %s
Respond with JSON only: {"title":"...","category":"...","readTime":5,"paragraphs":["...","..."]}.
Write 3-5 paragraphs of actual teaching content, each 2-4 sentences.`

func (s *Service) GenerateCourseDraft(ctx context.Context, prompt string) (*CourseDraft, error) {
	raw, err := s.chat(ctx, s.cfg.ReasoningModel, "", fmt.Sprintf(courseDraftPrompt, prompt), true)
	if err != nil {
		return nil, err
	}

	var draft CourseDraft
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &draft); err != nil {
		return nil, fmt.Errorf("%w: cannot decode course draft: %v", ErrExternal, err)
	}
	if strings.TrimSpace(draft.Title) == "" || len(draft.Paragraphs) == 0 {
		return nil, fmt.Errorf("%w: course draft is incomplete", ErrExternal)
	}
	if draft.ReadTime < 1 {
		draft.ReadTime = 5
	}
	return &draft, nil
}

/* ==========================
   Internals
========================== */

func (s *Service) chat(ctx context.Context, model, system, prompt string, jsonMode bool) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("[ERROR] chat completion failed (model=%s): %v", model, err)
		return "", fmt.Errorf("%w: %v", ErrExternal, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", ErrExternal)
	}
	return resp.Choices[0].Message.Content, nil
}

// FlattenBlocks extracts the readable text of a topic: paragraph bodies
// plus titles of media blocks. Blocks with empty content are skipped,
// mirroring how they are skipped in rendering.
func FlattenBlocks(blocks []topicModel.TopicContentBlockModel) string {
	var b strings.Builder
	for _, block := range blocks {
		if strings.TrimSpace(block.BlockContent) == "" && strings.TrimSpace(block.BlockTitle) == "" {
			continue
		}
		switch block.BlockType {
		case topicModel.BlockParagraph:
			b.WriteString(block.BlockContent)
			b.WriteString("\n\n")
		case topicModel.BlockVideo, topicModel.BlockImage, topicModel.BlockDocument:
			if block.BlockTitle != "" {
				b.WriteString(fmt.Sprintf("[%s: %s]\n\n", block.BlockType, block.BlockTitle))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(raw, "```")
	}
	return strings.TrimSpace(raw)
}
