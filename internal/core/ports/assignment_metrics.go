package ports

import "time"

// Outcomes of an assignment run as reported to AssignmentMetrics.
const (
	AssignmentOutcomeScheduled        = "scheduled"
	AssignmentOutcomeAlreadyScheduled = "already_scheduled"
	AssignmentOutcomeNothingToDo      = "nothing_to_schedule"
	AssignmentOutcomeFailed           = "failed"
)

// AssignmentMetrics receives one observation per assignment run.
type AssignmentMetrics interface {
	ObserveRun(outcome string, placed, unassigned int, duration time.Duration)
}
