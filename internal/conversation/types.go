package conversation

import "voice-ordering-kiosk/internal/action"

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one recorded message. Agent turns hold the raw backend text.
type Turn struct {
	Role Role
	Text string
}

// Reply is the outcome of one Submit.
type Reply struct {
	Text     string
	Actions  []action.Action
	Degraded bool
	// Cause is set when Degraded is true.
	Cause error
}
