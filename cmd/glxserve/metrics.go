package main

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	requests *prometheus.CounterVec
	reloads  prometheus.Counter
	clients  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "glxserve",
			Name:      "http_requests_total",
			Help:      "Requests served, by status code.",
		}, []string{"code"}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "glxserve",
			Name:      "reloads_total",
			Help:      "Reload notifications broadcast to browsers.",
		}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "glxserve",
			Name:      "livereload_clients",
			Help:      "Connected live reload clients.",
		}),
	}
	reg.MustRegister(m.requests, m.reloads, m.clients)
	return m
}
