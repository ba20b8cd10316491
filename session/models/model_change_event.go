package models

// ModelChangeEvent records a switch of the active model.
type ModelChangeEvent struct {
	BaseEvent
	ModelID string
}
