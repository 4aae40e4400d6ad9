// Package metrics exposes Prometheus counters for the trading loop and an
// optional /metrics listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BarsTotal counts bars processed per symbol.
	BarsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "smacross_bars_total", Help: "Count of bars processed"},
		[]string{"symbol"},
	)
	// SignalsTotal counts strategy signals per symbol and type.
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "smacross_signals_total", Help: "Strategy signals emitted"},
		[]string{"symbol", "type"},
	)
	// OrdersTotal counts orders submitted per symbol and side.
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "smacross_orders_total", Help: "Orders submitted"},
		[]string{"symbol", "side"},
	)
	// FillsTotal counts confirmed fills per symbol and side.
	FillsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "smacross_fills_total", Help: "Order fills recorded"},
		[]string{"symbol", "side"},
	)
)

func init() {
	prometheus.MustRegister(BarsTotal, SignalsTotal, OrdersTotal, FillsTotal)
}

// Serve starts an HTTP server exposing /metrics on addr. The server runs in
// a background goroutine; the caller may Close it on shutdown.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
