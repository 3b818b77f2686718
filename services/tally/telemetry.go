package tally

import (
	"precinct-results/lib/telemetry"
)

var tracer = telemetry.Tracer("precinct-results.services.tally")
var meter = telemetry.Meter("precinct-results.services.tally")

var pagesParsed, _ = meter.Int64Counter("tally.pages_parsed")
var recordsEmitted, _ = meter.Int64Counter("tally.records_emitted")
