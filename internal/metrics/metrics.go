package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ApprovalDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteerhub", Name: "approval_decisions_total",
		Help: "Hour-approval decisions by outcome",
	}, []string{"outcome"})

	Registrations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "volunteerhub", Name: "event_registrations_total",
		Help: "Event registrations",
	})
)

func init() {
	prometheus.MustRegister(ApprovalDecisions, Registrations)
}

func Handler() http.Handler { return promhttp.Handler() }
