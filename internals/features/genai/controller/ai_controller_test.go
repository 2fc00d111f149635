package controller

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateSpeechTextShortInputUntouched(t *testing.T) {
	assert.Equal(t, "hello", truncateSpeechText("hello", 10))
	assert.Equal(t, "hello", truncateSpeechText("hello", 5))
}

func TestTruncateSpeechTextKeepsValidUTF8(t *testing.T) {
	// "é" is two bytes; a cap of 5 bytes lands mid-rune and must back
	// off to the rune boundary.
	text := "abcdé"
	got := truncateSpeechText(text, 5)
	assert.Equal(t, "abcd", got)
	assert.True(t, utf8.ValidString(got))
}

func TestTruncateSpeechTextMultiByteBody(t *testing.T) {
	text := strings.Repeat("日", 2000) // three bytes each
	got := truncateSpeechText(text, maxSpeechChars)
	assert.LessOrEqual(t, len(got), maxSpeechChars)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 0, len(got)%3)
}
