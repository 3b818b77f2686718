package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"precinct-results/cmd/tally/commands"
	"precinct-results/lib/serviceutil"
	"precinct-results/lib/telemetry"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		serviceutil.Fatal("failed to load .env", err)
	}

	ctx := serviceutil.SignalContext()

	err = telemetry.SetupFromEnv(ctx, "tally")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}
	defer telemetry.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx, time.Second*5)

	commands.ExecuteContext(ctx)
}
