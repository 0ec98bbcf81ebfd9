package engine

import "time"

// EventType represents different lifecycle phases of a run
type EventType string

const (
	// join pipeline
	EventBindStart EventType = "bind_start"
	EventBindEnd   EventType = "bind_end"
	EventJoinStep  EventType = "join_step"
	EventJoinEnd   EventType = "join_end"

	// query pipeline
	EventLexStart   EventType = "lex_start"
	EventLexEnd     EventType = "lex_end"
	EventParseStart EventType = "parse_start"
	EventParseEnd   EventType = "parse_end"
	EventPlanStart  EventType = "plan_start"
	EventPlanEnd    EventType = "plan_end"
	EventExecStart  EventType = "exec_start"
	EventExecEnd    EventType = "exec_end"
)

// Event represents a lifecycle event of a join or query run
type Event struct {
	Type      EventType // Type of event
	RunID     string    // Identifies the run for tracing
	Timestamp time.Time // When the event occurred
	Data      any       // Phase-specific data (e.g., SQL, token count, step info, row count)
}

// Observer interface for event subscribers
// Observers receive events at major execution phases
type Observer interface {
	OnEvent(event Event)
}
