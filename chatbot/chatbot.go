// api/chatbot/chatbot.go

// Package chatbot answers support questions by keyword matching against a
// static Q&A table. There is no NLP here; a message matches an entry when
// either side contains the other's significant words.
package chatbot

import "strings"

// QA pairs a canonical question with its canned answer.
type QA struct {
	Question string
	Answer   string
}

const (
	// Greeting opens every conversation.
	Greeting = "Hello! I'm your Res4City assistant. How can I help you today?"

	// FallbackAnswer is returned when no table entry matches.
	FallbackAnswer = "I don't have information about that yet. Please contact our support team for more assistance."
)

var defaultQA = []QA{
	{
		Question: "What is Res4City?",
		Answer:   "Res4City is a platform focused on sustainable urban development. We offer micro-credentials and courses to help you learn about green city initiatives, urban planning, and sustainable development.",
	},
	{
		Question: "How do I track my course progress?",
		Answer:   "You can track your course progress by going to the Progress tab in the navigation bar. It shows all your enrolled courses and their completion percentages.",
	},
	{
		Question: "Can I download course materials for offline viewing?",
		Answer:   "Yes, all course videos and PDFs are available for offline viewing. When viewing a course, look for the download button next to each resource.",
	},
	{
		Question: "How does the leaderboard work?",
		Answer:   "The leaderboard ranks users based on course completion and participation. You earn points for completing lessons, watching videos, and interacting with course materials.",
	},
	{
		Question: "How do I earn certificates?",
		Answer:   "Certificates are awarded upon successful completion of each course. You need to complete all lessons and pass the final assessment to receive your certificate.",
	},
}

type Bot struct {
	qa []QA
}

func New() *Bot {
	return &Bot{qa: defaultQA}
}

// NewWithTable builds a bot over a custom Q&A table.
func NewWithTable(qa []QA) *Bot {
	return &Bot{qa: qa}
}

// Reply returns the canned answer for the first matching table entry, or
// the fallback. A message matches when the canonical question contains the
// message, or the message contains the question's long words (length > 3)
// joined in order.
func (b *Bot) Reply(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return FallbackAnswer
	}

	for _, qa := range b.qa {
		question := strings.ToLower(qa.Question)
		if strings.Contains(question, lower) || strings.Contains(lower, longWords(question)) {
			return qa.Answer
		}
	}
	return FallbackAnswer
}

func longWords(question string) string {
	var kept []string
	for _, word := range strings.Fields(question) {
		if len(word) > 3 {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
