// Package prometheus records assignment run metrics with the Prometheus client.
package prometheus

import (
	"errors"
	"time"

	"dispatch/internal/core/ports"

	prom "github.com/prometheus/client_golang/prometheus"
)

const subsystem = "assignment"

// AssignmentRecorder implements ports.AssignmentMetrics.
//
// Exposed series:
//   - dispatch_assignment_runs_total{outcome}
//   - dispatch_assignment_run_duration_seconds{outcome}
//   - dispatch_assignment_orders_placed_total
//   - dispatch_assignment_orders_unassigned_total
type AssignmentRecorder struct {
	runs       *prom.CounterVec
	duration   *prom.HistogramVec
	placed     prom.Counter
	unassigned prom.Counter
}

var _ ports.AssignmentMetrics = (*AssignmentRecorder)(nil)

// NewAssignmentRecorder creates the collectors and registers them on reg.
func NewAssignmentRecorder(reg prom.Registerer) (*AssignmentRecorder, error) {
	r := &AssignmentRecorder{
		runs: prom.NewCounterVec(
			prom.CounterOpts{
				Namespace: "dispatch",
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Count of assignment runs by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prom.NewHistogramVec(
			prom.HistogramOpts{
				Namespace: "dispatch",
				Subsystem: subsystem,
				Name:      "run_duration_seconds",
				Help:      "Wall time of assignment runs by outcome.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		placed: prom.NewCounter(prom.CounterOpts{
			Namespace: "dispatch",
			Subsystem: subsystem,
			Name:      "orders_placed_total",
			Help:      "Count of orders placed into a slot.",
		}),
		unassigned: prom.NewCounter(prom.CounterOpts{
			Namespace: "dispatch",
			Subsystem: subsystem,
			Name:      "orders_unassigned_total",
			Help:      "Count of orders no slot could take.",
		}),
	}

	if err := errors.Join(
		reg.Register(r.runs),
		reg.Register(r.duration),
		reg.Register(r.placed),
		reg.Register(r.unassigned),
	); err != nil {
		return nil, err
	}

	// Every outcome series exists from startup at zero.
	for _, outcome := range []string{
		ports.AssignmentOutcomeScheduled,
		ports.AssignmentOutcomeAlreadyScheduled,
		ports.AssignmentOutcomeNothingToDo,
		ports.AssignmentOutcomeFailed,
	} {
		r.runs.WithLabelValues(outcome)
	}

	return r, nil
}

// ObserveRun records one finished run.
func (r *AssignmentRecorder) ObserveRun(outcome string, placed, unassigned int, duration time.Duration) {
	r.runs.WithLabelValues(outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(duration.Seconds())
	r.placed.Add(float64(placed))
	r.unassigned.Add(float64(unassigned))
}
