package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one chat message. Timestamp is a display string (HH:MM) and may be empty.
type Turn struct {
	Role      string `json:"role" bson:"role"`
	Content   string `json:"content" bson:"content"`
	Timestamp string `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

// CloneTurns copies a turn slice so callers never share backing arrays.
func CloneTurns(turns []Turn) []Turn {
	if turns == nil {
		return nil
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}
