package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_price_quotes_total",
			Help: "Number of price quotes by storage tier and outcome.",
		},
		[]string{"storage_tier", "outcome"},
	)

	quotePrice = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_price_quote_microalgos",
		Help:    "Quoted total price in microAlgos.",
		Buckets: prometheus.ExponentialBuckets(250000, 4, 10),
	}, []string{"storage_tier"})

	quoteFileSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storage_price_quote_file_size_bytes",
		Help:    "Size of the files priced.",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_price_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	oracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_price_oracle_calls_total",
			Help: "Price oracle calls by oracle and result.",
		},
		[]string{"oracle", "result"},
	)

	oracleCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_price_oracle_cache_total",
			Help: "Price oracle cache lookups.",
		},
		[]string{"result"},
	)
)

func QuoteSucceeded(tier string, priceMicroAlgos float64, sizeBytes int64) {
	quotesTotal.WithLabelValues(tier, "success").Inc()
	quotePrice.WithLabelValues(tier).Observe(priceMicroAlgos)
	quoteFileSize.Observe(float64(sizeBytes))
}

func QuoteFailed(tier string, reason string) {
	quotesTotal.WithLabelValues(tier, reason).Inc()
}

func ObserveRequest(method, route string, status int, seconds float64) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

func OracleCall(oracle, result string) {
	oracleCalls.WithLabelValues(oracle, result).Inc()
}

func OracleCacheLookup(hit bool) {
	if hit {
		oracleCache.WithLabelValues("hit").Inc()
		return
	}
	oracleCache.WithLabelValues("miss").Inc()
}
