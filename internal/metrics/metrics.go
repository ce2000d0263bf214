// Package metrics provides application-level counters using stdlib expvar.
// The HTTP API server exposes them on its /debug/vars endpoint.
package metrics

import "expvar"

// Operation counters.
var (
	ParseTotal      = expvar.NewInt("emslog_parse_total")
	ParseFailures   = expvar.NewInt("emslog_parse_failures_total")
	RecordsIngested = expvar.NewInt("emslog_records_ingested_total")
	RecordsDropped  = expvar.NewInt("emslog_records_dropped_total")
	RegistryMisses  = expvar.NewInt("emslog_registry_misses_total")
	EditsApplied    = expvar.NewInt("emslog_edits_applied_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
