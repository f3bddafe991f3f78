package models

import "time"

// LastActivityJustNow is the only lastActivity value the chat session ever writes.
const LastActivityJustNow = "Just now"

// Conversation is a named turn sequence materialized after the first successful exchange of a session.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastActivity string    `json:"last_activity"`
	Turns        []Turn    `json:"turns"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c Conversation) Clone() Conversation {
	c.Turns = CloneTurns(c.Turns)
	return c
}
