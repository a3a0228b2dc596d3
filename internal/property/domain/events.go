package domain

import "time"

// Subjects published on the event bus.
const (
	SubjectPropertyCreated = "property.created"
	SubjectPropertyUpdated = "property.updated"
	SubjectPropertyDeleted = "property.deleted"
	SubjectQuerySubmitted  = "query.submitted"
)

// PropertyEvent is the payload of the property.* subjects.
type PropertyEvent struct {
	PropertyID string    `json:"property_id"`
	Title      string    `json:"title,omitempty"`
	Location   string    `json:"location,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// QueryEvent is the payload of query.submitted.
type QueryEvent struct {
	QueryID   string    `json:"query_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}
