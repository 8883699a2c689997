// Package metrics exposes the plugin's Prometheus instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteflow_tool_invocations_total",
			Help: "Tool calls by name and outcome",
		},
		[]string{"tool", "outcome"},
	)

	asrPolls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "noteflow_asr_polls_total",
			Help: "Status queries issued against the transcription service",
		},
	)

	transcriptionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "noteflow_transcription_duration_seconds",
			Help:    "Wall-clock time of the upload/poll/parse pipeline",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
		[]string{"outcome"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noteflow_transcript_cache_lookups_total",
			Help: "Transcript cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordTool counts one tool invocation.
func RecordTool(tool string, success bool) {
	toolInvocations.WithLabelValues(tool, outcome(success)).Inc()
}

// RecordPoll counts one status query against the transcription service.
func RecordPoll() { asrPolls.Inc() }

// RecordTranscription observes one full transcription pipeline run.
func RecordTranscription(d time.Duration, success bool) {
	transcriptionDuration.WithLabelValues(outcome(success)).Observe(d.Seconds())
}

// RecordCacheLookup counts a transcript cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
	} else {
		cacheLookups.WithLabelValues("miss").Inc()
	}
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
