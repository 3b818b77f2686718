package webresults

import (
	"precinct-results/lib/telemetry"
)

var tracer = telemetry.Tracer("precinct-results.services.webresults")
var meter = telemetry.Meter("precinct-results.services.webresults")

var contestsFetched, _ = meter.Int64Counter("webresults.contests_fetched")
