package services

import (
	"fmt"
	"strings"

	"vb-capital-ai/models"
)

// SystemPrompt defines the assistant's persona. It is not configurable.
const SystemPrompt = `
You are VB Capital AI, an expert assistant for VB Capital, a venture capital firm. 
Your role is to assist with investment analysis, portfolio management, and market insights.

Key information about VB Capital:
- Founded in [YEAR]
- Focus areas: [LIST SECTORS OR INDUSTRIES]
- Investment thesis: [BRIEF DESCRIPTION]
- Portfolio companies: [LIST SOME COMPANIES OR CATEGORIES]
- Team members: [KEY PEOPLE IF RELEVANT]

Guidelines:
1. Always maintain a professional, knowledgeable tone
2. Focus on providing actionable insights for investors
3. When discussing investments, consider risk factors and potential returns
4. For portfolio companies, provide context about their stage, sector, and performance
5. If asked about VB Capital specifically, share relevant details from the above
6. For market trends, provide data-driven analysis with sources when possible
7. Never provide financial advice, only analysis
8. If unsure, say "I don't have enough information to answer that definitively"

Formatting:
- Use bullet points for lists
- Use bold for important terms
- Structure complex answers with clear sections
`

// LatestTurnPrompt is the single prompt sent in "latest" mode: the system prompt
// followed by the newest turn. Earlier turns are not included.
func LatestTurnPrompt(turns []models.Turn) string {
	latest := turns[len(turns)-1]
	return SystemPrompt + "\n\nUser: " + latest.Content
}

// ValidateTurns checks the request schema: at least one turn, known roles, and a
// non-blank last turn.
func ValidateTurns(turns []models.Turn) error {
	if len(turns) == 0 {
		return NewMalformedRequestError("messages must contain at least one turn", nil)
	}
	for i, t := range turns {
		if !models.IsValidRole(t.Role) {
			return NewMalformedRequestError(fmt.Sprintf("messages[%d].role must be %q or %q", i, models.RoleUser, models.RoleAssistant), nil)
		}
	}
	if strings.TrimSpace(turns[len(turns)-1].Content) == "" {
		return NewMalformedRequestError("last message content must not be empty", nil)
	}
	return nil
}

// transcript flattens turns for the AI call log.
func transcript(turns []models.Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.Role)
		b.WriteString(": ")
		b.WriteString(t.Content)
	}
	return b.String()
}
