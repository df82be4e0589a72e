package query

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mnee-network/explorer/internal/utils"
)

func init() {
	utils.PromRegistry().MustRegister(
		queryDurationVec,
	)
}

var (
	queryDurationVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "explorer",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "duration of in-memory queries",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"op"},
	)
)

func observe(op string, start time.Time) {
	queryDurationVec.With(prometheus.Labels{"op": op}).Observe(time.Since(start).Seconds())
}
