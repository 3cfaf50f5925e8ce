// Package obs holds the process-wide Prometheus collectors for the auth core.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medreport",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"result"})

	tokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medreport",
		Subsystem: "auth",
		Name:      "token_verifications_total",
		Help:      "Access-token verifications at the authentication gate, by outcome.",
	}, []string{"result"})
)

func Login(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

func TokenVerification(result string) {
	tokenVerifications.WithLabelValues(result).Inc()
}
