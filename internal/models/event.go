package models

// OrderParsedEvent is published for every order line that parsed without a
// fatal error.
type OrderParsedEvent struct {
	ID              string      `json:"id"`
	Timestamp       int64       `json:"timestamp"`
	EventType       string      `json:"eventType"`
	TimeOfDay       string      `json:"timeOfDay,omitempty"`
	RawInput        string      `json:"rawInput"`
	HasInvalidInput bool        `json:"hasInvalidInput"`
	Items           []OrderLine `json:"items"`
	Rendered        string      `json:"rendered"`
}
