package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of every handled HTTP request, labelled by route and method.
	HTTPRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "learndesk_http_request_latency_seconds",
		Help:    "Latency of handled HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Total enrollment transactions committed through the admin flow
	EnrollmentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "learndesk_enrollments_created_total",
		Help: "Total enrollments committed",
	})

	// Total settlements transitioned to PAID
	SettlementsPaid = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "learndesk_settlements_paid_total",
		Help: "Total settlements marked as paid",
	})

	// Total OTP codes issued during admin login
	OTPIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "learndesk_otp_issued_total",
		Help: "Total one-time codes issued",
	})

	// Wallet adjustments, labelled by direction
	WalletAdjustments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "learndesk_wallet_adjustments_total",
		Help: "Total wallet balance adjustments",
	}, []string{"type"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestLatency,
		EnrollmentsCreated,
		SettlementsPaid,
		OTPIssued,
		WalletAdjustments,
	)
}
