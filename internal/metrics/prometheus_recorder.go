package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rezmoss/standupclock/internal/schedule"
)

const namespace = "standupclock"

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	ticks         prom.Counter
	untilDeadline prom.Gauge
	sinceDeadline prom.Gauge
	standupDay    prom.Gauge
	late          prom.Gauge
	notifications *prom.CounterVec
	enabled       prom.Gauge
}

// NewPrometheusRecorder creates the collectors and registers them on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		ticks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Clock ticks processed",
		}),
		untilDeadline: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "seconds_until_standup",
			Help:      "Seconds left before today's standup, 0 once it started",
		}),
		sinceDeadline: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "seconds_late",
			Help:      "Seconds elapsed since today's standup started, 0 before it",
		}),
		standupDay: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "standup_day",
			Help:      "1 when a standup is scheduled today",
		}),
		late: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "late",
			Help:      "1 once today's standup deadline has passed",
		}),
		notifications: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Standup reminders dispatched, by result",
		}, []string{"result"}),
		enabled: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications_enabled",
			Help:      "1 when notification permission is granted",
		}),
	}
	reg.MustRegister(pr.ticks, pr.untilDeadline, pr.sinceDeadline, pr.standupDay, pr.late, pr.notifications, pr.enabled)
	return pr
}

func (p *PrometheusRecorder) ObserveTick(st schedule.State) {
	p.ticks.Inc()
	p.standupDay.Set(boolGauge(st.IsStandupDay))
	p.late.Set(boolGauge(st.IsLate))
	if st.IsLate {
		p.untilDeadline.Set(0)
		p.sinceDeadline.Set(st.Delta.Seconds())
	} else {
		p.untilDeadline.Set(st.Delta.Seconds())
		p.sinceDeadline.Set(0)
	}
}

func (p *PrometheusRecorder) IncNotification(result NotifyResult) {
	p.notifications.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetNotificationsEnabled(enabled bool) {
	p.enabled.Set(boolGauge(enabled))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// HTTPHandler serves the metrics registered on reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
