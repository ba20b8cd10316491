package models

// SessionEvent opens a session log and carries its identifier.
type SessionEvent struct {
	BaseEvent
	ID string
}
