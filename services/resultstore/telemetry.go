package resultstore

import (
	"precinct-results/lib/telemetry"
)

var tracer = telemetry.Tracer("precinct-results.services.resultstore")
