package redis

import "provisionbot/internal/commission"

// Session is one chat's calculator state. Inputs is replaced as a whole on
// every change. DashboardMessageID is the chat's latest dashboard, which
// later changes edit in place.
type Session struct {
	Step               string            `json:"step"`
	Field              commission.Field  `json:"field,omitempty"`
	Inputs             commission.Inputs `json:"inputs"`
	DashboardMessageID int               `json:"dashboard_message_id,omitempty"`
}

// NewSession starts from the reference configuration.
func NewSession() *Session {
	return &Session{Inputs: commission.Defaults()}
}
