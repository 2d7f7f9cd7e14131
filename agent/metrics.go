package agent

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/eashang1/terminal-s8/agent"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	intents  metric.Int64Counter
	accepted metric.Int64Counter
	breaches metric.Int64Counter
	dropped  metric.Int64Counter
}

// newMetrics uses the global OTel meter, which is a no-op unless a provider
// has been installed.
func newMetrics() (*metrics, error) {
	m := meter()
	var (
		out metrics
		err error
	)

	out.intents, err = m.Int64Counter(
		"funnel.intents.issued",
		metric.WithDescription("Intents issued, by planner"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating intents counter: %w", err)
	}

	out.accepted, err = m.Int64Counter(
		"funnel.units.accepted",
		metric.WithDescription("Spawns, upgrades and removals accepted by the transaction layer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating accepted counter: %w", err)
	}

	out.breaches, err = m.Int64Counter(
		"funnel.breaches.recorded",
		metric.WithDescription("Opponent breaches appended to the breach log"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating breaches counter: %w", err)
	}

	out.dropped, err = m.Int64Counter(
		"funnel.frames.dropped",
		metric.WithDescription("Action frames dropped because their breach events were malformed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	return &out, nil
}
