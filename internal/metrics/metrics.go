package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application counters, exposed on /metrics.
var (
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coachdesk_payments_recorded_total",
		Help: "Number of fee payments recorded.",
	})

	AttendanceUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coachdesk_attendance_upserts_total",
		Help: "Number of attendance records created or overwritten.",
	})

	ExportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coachdesk_attendance_exports_total",
		Help: "Number of attendance report files generated.",
	})
)
