// Package metrics defines and registers the custom Prometheus metrics for
// the todolist API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todolist"

// AuthAttemptsTotal counts authentication attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "conflict", "unauthorized", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// TodosCreatedTotal counts newly created todos.
// Label:
//   - status: the initial status of the item ("pending", "in_progress", "completed")
var TodosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created, by initial status.",
	},
	[]string{"status"},
)

// OrderAssignmentsTotal counts rank assignments on create.
// Label:
//   - mode: "explicit" (client supplied) or "computed" (max+1)
var OrderAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_assignments_total",
		Help:      "Total number of order rank assignments, by mode.",
	},
	[]string{"mode"},
)
