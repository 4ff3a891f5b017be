/*
Package observability provides Prometheus instrumentation for espalier.

Metrics are registered on a caller-supplied prometheus.Registerer so tests and
the CLI can keep them isolated from the global default registry. A nil
*Metrics is valid and records nothing.
*/
package observability
