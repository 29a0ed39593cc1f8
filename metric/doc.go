// Package metric exports scanner metrics to Prometheus.
//
//	pc := metric.NewPrometheusCollector()
//	s := nslscan.New(nslscan.WithMetricsCollector(pc))
//	...
//	_ = pc.WriteTextfile("/var/lib/node_exporter/nslscan.prom")
package metric
