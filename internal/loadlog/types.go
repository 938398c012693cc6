package loadlog

import "time"

// Outcome is the result of one content load.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeMaskedRedirect Outcome = "masked_redirect"
	OutcomeElementMissing Outcome = "element_missing"
)

// Event records a content load attempt.
type Event struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	ComponentID string    `json:"component_id"`
	Path        string    `json:"path"`
	Outcome     Outcome   `json:"outcome"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary aggregates events by outcome.
type Summary struct {
	Total     int             `json:"total"`
	ByOutcome map[Outcome]int `json:"by_outcome"`
}
