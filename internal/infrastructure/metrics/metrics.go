package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pharmaflux_missions_created_total",
		Help: "Missions created by employers.",
	})

	MissionsAssigned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pharmaflux_missions_assigned_total",
		Help: "Missions that reached the assigned status.",
	})

	MatchingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmaflux_matching_runs_total",
		Help: "Matching engine runs by outcome.",
	}, []string{"outcome"})

	ApplicationsProposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pharmaflux_applications_proposed_total",
		Help: "Applications created in the proposed state.",
	})

	ApplicationsDecided = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmaflux_applications_decided_total",
		Help: "Application transitions to a terminal state.",
	}, []string{"status"})

	ContractsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pharmaflux_contracts_generated_total",
		Help: "Contracts generated after acceptance.",
	})

	WorkerRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmaflux_worker_retries_total",
		Help: "Background task retries by task name.",
	}, []string{"task"})
)
