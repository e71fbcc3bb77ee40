package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starstream_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starstream_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starstream_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)
)

// Ledger Metrics
var (
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starstream_transfers_total",
			Help: "Coin transfers by result (ok, insufficient_funds).",
		},
		[]string{"result"},
	)

	CoinsMinted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starstream_coins_minted_total",
			Help: "Coins created by privileged grants.",
		},
	)

	CoinsConfiscated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starstream_coins_confiscated_total",
			Help: "Coins removed by privileged confiscations.",
		},
	)
)

// Shop Metrics
var (
	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starstream_purchases_total",
			Help: "Shop purchase attempts by outcome.",
		},
		[]string{"outcome"},
	)

	RefundsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starstream_refunds_total",
			Help: "Compensating refunds issued after post-debit failures.",
		},
	)
)

// Discord Metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starstream_discord_commands_total",
			Help: "Slash command invocations by command name.",
		},
		[]string{"command"},
	)
)
