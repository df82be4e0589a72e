package mockgen

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mnee-network/explorer/internal/utils"
)

func init() {
	utils.PromRegistry().MustRegister(
		generatedCounterVec,
	)
}

var (
	generatedCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Subsystem: "mockgen",
			Name:      "generated_total",
			Help:      "number of generated mock records by kind",
		},
		[]string{"kind"},
	)
)

func countGenerated(kind string, n int) {
	generatedCounterVec.With(prometheus.Labels{"kind": kind}).Add(float64(n))
}
