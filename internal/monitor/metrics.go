package monitor

import (
	"errors"
	"net/http"
	"time"

	"UCLA-Rocket-Project/NSRT/internal/commander"
	"UCLA-Rocket-Project/NSRT/internal/globals"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics counts command exchanges. It implements commander.Observer.
type Metrics struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(logger *zap.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logger,

		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nsrt_commands_total",
				Help: "Command exchanges with the instrument by result",
			},
			[]string{"command", "result"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nsrt_command_duration_seconds",
				Help:    "Time from frame write to complete reply",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"command"},
		),
	}

	m.registry.MustRegister(m.commands, m.duration)
	return m
}

func (m *Metrics) ObserveCommand(command uint32, elapsed time.Duration, err error) {
	name := globals.CommandName(command)
	m.commands.WithLabelValues(name, commander.ErrorKind(err)).Inc()
	m.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		m.logger.Info("Metrics listener started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("Metrics listener stopped", zap.Error(err))
		}
	}()

	return server
}
