package models

// UnknownEvent is a fallback for record types the parser ignores.
// Its timestamp still counts towards the session's time span.
type UnknownEvent struct {
	BaseEvent
}
