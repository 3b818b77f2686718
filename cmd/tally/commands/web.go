package commands

import (
	"log/slog"
	"precinct-results/lib/configutil"
	"precinct-results/lib/restyutil"
	"precinct-results/lib/serviceutil"
	"precinct-results/services/webresults"
	"time"

	"github.com/spf13/cobra"
)

var webDump *bool
var webOutput *outputFlags

func init() {
	webDump = webCmd.Flags().Bool(
		"dump-http", false,
		"Write every HTTP exchange to <dev_state>/resty/web.",
	)
	webOutput = registerOutputFlags(webCmd)
	rootCmd.AddCommand(webCmd)
}

var webCmd = &cobra.Command{
	Use:   "web <config.json5|config.yaml> [-o out.csv] [--db <results.db>]",
	Short: "Scrapes precinct results from a county results website.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		opts, err := configutil.ReadConfig[webresults.Options](args[0])
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		var dump restyutil.InstrumentOutput
		if *webDump {
			dump, err = restyutil.NewFilesystemOutput("<dev_state>/resty/web")
			if err != nil {
				serviceutil.Fatal("failed to create http dump directory", err)
			}
		}
		client, err := webresults.NewClient(opts, dump)
		if err != nil {
			serviceutil.Fatal("failed to create client", err)
		}

		out, err := webOutput.open(ctx, "web", opts.County)
		if err != nil {
			serviceutil.Fatal("failed to open output", err)
		}

		t1 := time.Now()
		summary, err := client.Scrape(ctx, out)
		closeErr := out.close(err)
		if err != nil {
			serviceutil.Fatal("failed to scrape results", err)
		}
		if closeErr != nil {
			serviceutil.Fatal("failed to write output", closeErr)
		}
		t2 := time.Now()

		slog.Info(
			"scraped records",
			"contests", summary.Pages,
			"records", summary.Records,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
