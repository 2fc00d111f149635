package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret      string
	GoogleClientID string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

/* =======================
   App config value objects

   Business logic never reads ENV directly; everything it needs is
   resolved here once and passed in at construction time.
======================= */

// GenAIConfig carries everything the content-generation boundary needs.
type GenAIConfig struct {
	APIKey         string
	ChatModel      string // fast model for quiz, Q&A, summaries
	ReasoningModel string // heavier model for "thinking mode" chat
	SpeechModel    string
	SpeechVoice    string
}

// BootstrapConfig drives startup seeding and integrity recovery.
type BootstrapConfig struct {
	DefaultCreatorName     string
	DefaultCreatorEmail    string
	DefaultCreatorPassword string
	EveryoneGroupLabel     string // display label of the share-with-everyone group
}

func LoadGenAIConfig() GenAIConfig {
	return GenAIConfig{
		APIKey:         GetEnv("OPENAI_API_KEY"),
		ChatModel:      GetEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		ReasoningModel: GetEnv("OPENAI_REASONING_MODEL", "gpt-4o"),
		SpeechModel:    GetEnv("OPENAI_SPEECH_MODEL", "tts-1"),
		SpeechVoice:    GetEnv("OPENAI_SPEECH_VOICE", "nova"),
	}
}

func LoadBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{
		DefaultCreatorName:     GetEnv("DEFAULT_CREATOR_NAME", "Alex Ray"),
		DefaultCreatorEmail:    strings.ToLower(GetEnv("DEFAULT_CREATOR_EMAIL", "alex@example.com")),
		DefaultCreatorPassword: GetEnv("DEFAULT_CREATOR_PASSWORD", "password123"),
		EveryoneGroupLabel:     GetEnv("EVERYONE_GROUP_LABEL", "All Employees"),
	}
}
