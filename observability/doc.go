// Package observability holds the Prometheus collectors shared by the
// planner, its HTTP API and the plan cache, together with decorators that
// time calls to the embedding and completion services.
package observability
