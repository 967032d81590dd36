// Package server assembles and runs the banca-console HTTP server.
//
// It wires the API client, the optional audit journal and the web console
// onto one ServeMux, adds /health and /health/ready, and manages graceful
// shutdown when the run context is canceled.
package server
