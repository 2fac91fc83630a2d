package tool

import "github.com/prometheus/client_golang/prometheus"

// InvocationsCounter exposes the per-outcome counter to external tests.
func InvocationsCounter(command string, o Outcome) prometheus.Counter {
	return toolInvocations.WithLabelValues(command, string(o))
}
