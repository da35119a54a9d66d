// Package server exposes travel planning over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	POST /v1/plan          {"query": "...", "top_k": 3} -> plan JSON
//	POST /v1/plan/pdf      same body -> application/pdf
//	GET  /metrics          Prometheus metrics, when a registry is mounted
package server
