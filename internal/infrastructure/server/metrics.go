package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	RoomsCreated     *prometheus.CounterVec
	AnswersSubmitted *prometheus.CounterVec
	SessionsStarted  prometheus.Counter
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		RoomsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocduel_rooms_created_total",
			Help: "Rooms created, by game mode.",
		}, []string{"mode"}),
		AnswersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocduel_answers_total",
			Help: "Answers submitted, by surface.",
		}, []string{"surface"}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vocduel_practice_sessions_started_total",
			Help: "Practice sessions started.",
		}),
	}
	registry.MustRegister(m.RoomsCreated, m.AnswersSubmitted, m.SessionsStarted)
	return m
}
