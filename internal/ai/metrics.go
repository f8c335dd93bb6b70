package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentformer_provider_requests_total",
			Help: "Total number of requests sent to LLM providers.",
		},
		[]string{"provider", "status"},
	)
	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentformer_provider_request_duration_seconds",
			Help:    "Duration of LLM provider requests.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"provider"},
	)
)

// Request outcome labels.
const (
	statusSuccess = "success"
	statusError   = "error"
	statusEmpty   = "empty"
)

// instrumented decorates a provider with request metrics and logging.
type instrumented struct {
	next TextGenerationProvider
}

func instrument(p TextGenerationProvider) TextGenerationProvider {
	return &instrumented{next: p}
}

func (i *instrumented) Name() string {
	return i.next.Name()
}

func (i *instrumented) SendPrompt(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	name := i.next.Name()
	start := time.Now()

	text, err := i.next.SendPrompt(ctx, prompt, maxTokens, temperature)

	elapsed := time.Since(start)
	providerRequestDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	status := statusSuccess
	switch {
	case err != nil:
		status = statusError
		slog.WarnContext(ctx, "provider request failed",
			"provider", name,
			"duration", elapsed.String(),
			"error", err,
		)
	case text == "":
		status = statusEmpty
	default:
		slog.DebugContext(ctx, "provider request completed",
			"provider", name,
			"prompt_chars", len(prompt),
			"reply_chars", len(text),
			"duration", elapsed.String(),
		)
	}
	providerRequestsTotal.WithLabelValues(name, status).Inc()

	return text, err
}
