package chat

import (
	"strings"
	"unicode/utf8"

	"vb-capital-ai/models"
)

const (
	titleMaxWords = 4
	titleMaxRunes = 30
)

// PopularQuestions are offered until the user has asked enough questions of their own.
var PopularQuestions = []string{
	"What are VB Capital's current investment focus areas?",
	"Can you analyze a startup's investment potential?",
	"What portfolio companies are in the AI sector?",
}

// Title keeps the first four space-separated words of message and cuts the
// result to 30 runes, marking a cut with "...".
func Title(message string) string {
	words := strings.Split(message, " ")
	if len(words) > titleMaxWords {
		words = words[:titleMaxWords]
	}
	title := strings.Join(words, " ")
	if utf8.RuneCountInString(title) > titleMaxRunes {
		return string([]rune(title)[:titleMaxRunes]) + "..."
	}
	return title
}

// Suggestions looks at the last six user turns across conversations and returns
// the first three longer than ten characters, or PopularQuestions when fewer qualify.
func Suggestions(conversations []models.Conversation) []string {
	var asked []string
	for _, conv := range conversations {
		for _, t := range conv.Turns {
			if t.Role == models.RoleUser {
				asked = append(asked, t.Content)
			}
		}
	}

	if len(asked) > 6 {
		asked = asked[len(asked)-6:]
	}
	var recent []string
	for _, q := range asked {
		if utf8.RuneCountInString(q) > 10 {
			recent = append(recent, q)
		}
	}
	if len(recent) >= 3 {
		return recent[:3]
	}

	out := make([]string, len(PopularQuestions))
	copy(out, PopularQuestions)
	return out
}
