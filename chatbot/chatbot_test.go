package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyMatchesSubstring(t *testing.T) {
	b := New()

	// The message is a substring of the canonical question.
	got := b.Reply("leaderboard")
	assert.Contains(t, got, "ranks users")

	// Case-insensitive.
	got = b.Reply("LEADERBOARD")
	assert.Contains(t, got, "ranks users")
}

func TestReplyExactQuestion(t *testing.T) {
	b := New()
	got := b.Reply("What is Res4City?")
	assert.Contains(t, got, "sustainable urban development")
}

func TestReplyFallback(t *testing.T) {
	b := New()
	assert.Equal(t, FallbackAnswer, b.Reply("what's the meaning of life"))
	assert.Equal(t, FallbackAnswer, b.Reply(""))
	assert.Equal(t, FallbackAnswer, b.Reply("   "))
}

func TestLongWords(t *testing.T) {
	assert.Equal(t, "does leaderboard work?", longWords("how does the leaderboard work?"))
}

func TestCustomTable(t *testing.T) {
	b := NewWithTable([]QA{{Question: "office hours", Answer: "9 to 5"}})
	assert.Equal(t, "9 to 5", b.Reply("office"))
	assert.Equal(t, FallbackAnswer, b.Reply("certificates"))
}
