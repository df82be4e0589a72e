package explorer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mnee-network/explorer/internal/utils"
)

func init() {
	utils.PromRegistry().MustRegister(
		commandCounterVec,
	)
}

var (
	commandCounterVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Subsystem: "session",
			Name:      "commands_total",
			Help:      "number of session commands dispatched",
		},
		[]string{"command"},
	)
)

func countCommand(command string) {
	commandCounterVec.With(prometheus.Labels{"command": command}).Inc()
}
