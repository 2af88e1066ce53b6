// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shepherd"

var (
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	DuplicatesFlagged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_candidates_total",
		Help:      "Person drafts held back because they resemble an existing record.",
	})

	Reassignments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reassignments_total",
		Help:      "Membership changes written to storage.",
	})

	ReportsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendance_reports_saved_total",
		Help:      "Attendance reports written, split into created and updated.",
	}, []string{"result"})

	AttendanceAlerts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "attendance_alerts",
		Help:      "Members flagged by the most recent alert computation, by severity.",
	}, []string{"severity"})
)
