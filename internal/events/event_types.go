package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated EventType = "staff_created"
	EventStaffUpdated EventType = "staff_updated"
	EventStaffExited  EventType = "staff_exited"
	EventStaffDeleted EventType = "staff_deleted"
)

// Event represents a staff lifecycle event emitted by the service layer.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RecordID  string      `json:"record_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	FullName   string `json:"full_name"`
	PictureURL string `json:"picture_url"`
}

// StaffUpdatedPayload payload.
type StaffUpdatedPayload struct {
	PhotoReplaced bool `json:"photo_replaced"`
}

// StaffExitedPayload payload.
type StaffExitedPayload struct {
	ExitDate string `json:"exit_date"`
}
